/*
Package csv reads and writes datasets in CSV format.

The header of the CSV content names the columns: one of them holds the
classifier of every instance and the rest are boolean attributes. Values
for attributes must be parseable by strconv.ParseBool.
*/
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
)

/*
Writer is an interface for a CSV stream to which instances
can be written to.
*/
type Writer interface {
	// Write will attempt to write the given
	// instances and will return the actually written
	// number of instances and an error (if not all instances
	// could be written)
	Write([]*dataset.Instance) (int, error)
	// Count returns the total number of instances written
	// to the writer
	Count() int
	// Flush ensures any pending written operations finish
	// before returning. It returns an error if that cannot
	// be ensured.
	Flush() error
}

type csvWriter struct {
	count      int
	classifier string
	attributes []feature.Attribute
	w          *csv.Writer
}

/*
ReadDataset takes an io.Reader for a CSV stream, the name of the column
holding the classifier and a dataset.Generator and returns the dataset built
with the generator and the instances parsed from the reader, along the metadata
for it, or an error.

If the classifier column name is "" the first column is taken as the
classifier column. The metadata returned declares every other column as an
attribute in the order they appear in the header, and the classifiers in the
order they are first found.
*/
func ReadDataset(reader io.Reader, classifierColumn string, sg dataset.Generator) (dataset.Dataset, *feature.Metadata, error) {
	var instances []*dataset.Instance
	m, err := ReadDatasetByInstance(reader, classifierColumn, func(_ int, instance *dataset.Instance) (bool, error) {
		instances = append(instances, instance)
		return true, nil
	})
	if err != nil {
		return nil, nil, err
	}
	var classifiers []feature.Classifier
	seen := make(map[feature.Classifier]bool)
	for _, instance := range instances {
		if !seen[instance.Classifier()] {
			seen[instance.Classifier()] = true
			classifiers = append(classifiers, instance.Classifier())
		}
	}
	m, err = feature.NewMetadata(m.Attributes, classifiers)
	if err != nil {
		return nil, nil, err
	}
	return sg(instances), m, nil
}

/*
ReadDatasetByInstance takes an io.Reader for a CSV stream, the name of the
classifier column and a lambda function on an integer and an instance that
returns a boolean value. It parses the instances from the reader and for each
it calls the lambda function with the instance and its index as parameters.
If the lambda function returns true, it will continue processing the next
instance, otherwise it will stop. It returns metadata with the attributes in the
header, or an error if something goes wrong when reading the stream or parsing
an instance.
*/
func ReadDatasetByInstance(reader io.Reader, classifierColumn string, lambda func(int, *dataset.Instance) (bool, error)) (*feature.Metadata, error) {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %v", err)
	}
	classifierIndex, attributes, err := parseCSVHeader(header, classifierColumn)
	if err != nil {
		return nil, err
	}
	m, err := feature.NewMetadata(attributes, nil)
	if err != nil {
		return nil, fmt.Errorf("parsing header: %v", err)
	}
	for l := 2; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading body: %v", err)
		}
		instance, err := parseInstanceFromCSVRow(row, classifierIndex, attributes)
		if err != nil {
			return nil, fmt.Errorf("parsing line %d: %v", l, err)
		}
		ok, err := lambda(l-2, instance)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
	}
	return m, nil
}

/*
ReadDatasetFromFilePath takes a filepath string, the name of the classifier
column and a dataset.Generator, opens the file to which the filepath points to
and uses ReadDataset to return a dataset and its metadata or an error read
from it. If the filepath is "" os.Stdin is read instead. It will return an
error if the given filepath cannot be opened for reading.
*/
func ReadDatasetFromFilePath(filepath, classifierColumn string, sg dataset.Generator) (dataset.Dataset, *feature.Metadata, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, nil, fmt.Errorf("reading dataset: %v", err)
		}
		defer f.Close()
	}
	s, m, err := ReadDataset(f, classifierColumn, sg)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %v", filepath, err)
	}
	return s, m, err
}

/*
NewWriter takes an io.Writer, the name for the classifier column and a slice
of attributes and returns a Writer that will write any instances on the
io.Writer, with the classifier on the first column.
*/
func NewWriter(writer io.Writer, classifierColumn string, attributes []feature.Attribute) (Writer, error) {
	w := csv.NewWriter(writer)
	record := make([]string, 0, len(attributes)+1)
	record = append(record, classifierColumn)
	for _, a := range attributes {
		record = append(record, a.Name())
	}
	err := w.Write(record)
	if err != nil {
		return nil, fmt.Errorf("writing CSV header: %v", err)
	}
	return &csvWriter{classifier: classifierColumn, attributes: attributes, w: w}, nil
}

/*
WriteDataset takes a writer, a dataset, the name for the classifier column
and a slice of attributes and dumps to the writer the dataset in CSV format,
specifying only the attributes in the given slice for the instances. It
returns an error if something went wrong when writing to the writer, or if
an instance lacks a value for any of the attributes.
*/
func WriteDataset(writer io.Writer, s dataset.Dataset, classifierColumn string, attributes []feature.Attribute) error {
	cw, err := NewWriter(writer, classifierColumn, attributes)
	if err != nil {
		return err
	}
	_, err = cw.Write(s.Instances())
	if err != nil {
		return err
	}
	return cw.Flush()
}

func parseCSVHeader(header []string, classifierColumn string) (int, []feature.Attribute, error) {
	classifierIndex := -1
	if classifierColumn == "" {
		classifierIndex = 0
	}
	var attributes []feature.Attribute
	for i, name := range header {
		if classifierIndex < 0 && name == classifierColumn {
			classifierIndex = i
			continue
		}
		if i == classifierIndex {
			continue
		}
		attributes = append(attributes, feature.Attribute(name))
	}
	if classifierIndex < 0 {
		return 0, nil, fmt.Errorf("parsing header: no classifier column %s", classifierColumn)
	}
	return classifierIndex, attributes, nil
}

func parseInstanceFromCSVRow(row []string, classifierIndex int, attributes []feature.Attribute) (*dataset.Instance, error) {
	values := make(map[feature.Attribute]bool, len(attributes))
	var c feature.Classifier
	j := 0
	for i, v := range row {
		if i == classifierIndex {
			c = feature.Classifier(v)
			continue
		}
		value, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q for attribute %s: not a boolean", v, attributes[j])
		}
		values[attributes[j]] = value
		j++
	}
	if c == "" {
		return nil, fmt.Errorf("missing classifier")
	}
	return dataset.NewInstance(values, c), nil
}

func (cw *csvWriter) Count() int {
	return cw.count
}

func (cw *csvWriter) Write(instances []*dataset.Instance) (int, error) {
	for n, instance := range instances {
		err := cw.writeInstance(instance)
		if err != nil {
			return n, err
		}
	}
	return len(instances), nil
}

func (cw *csvWriter) writeInstance(instance *dataset.Instance) error {
	record := make([]string, 0, len(cw.attributes)+1)
	record = append(record, instance.Classifier().String())
	for _, a := range cw.attributes {
		v, err := instance.ValueFor(a)
		if err != nil {
			return err
		}
		record = append(record, strconv.FormatBool(v))
	}
	err := cw.w.Write(record)
	if err != nil {
		return fmt.Errorf("writing CSV row for instance %d: %v", cw.count+1, err)
	}
	cw.count++
	return nil
}

func (cw *csvWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}
