/*
Package text reads and writes datasets in a plain whitespace-separated
text format.

The first line of the content declares the classifiers instances may be
labeled with, and the second line the names of the attributes. Every other
line holds an instance: its classifier followed by one boolean value per
attribute, in the order the attributes were declared. Blank lines are
ignored. For example:

	live die
	AGE FEMALE STEROID
	live true false false
	die false true true
*/
package text

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
	"github.com/pkg/errors"
)

/*
ReadDataset takes an io.Reader for content in text format and a
dataset.Generator and returns the dataset built with the generator from
the instances parsed from the reader, along the metadata declared in its
header lines, or an error.

Lines with a number of fields other than the number of attributes plus one,
values that are not booleans and classifiers not declared in the header are
rejected with an error.
*/
func ReadDataset(reader io.Reader, sg dataset.Generator) (dataset.Dataset, *feature.Metadata, error) {
	var m *feature.Metadata
	var classifiers []feature.Classifier
	var instances []*dataset.Instance
	scanner := bufio.NewScanner(reader)
	for l := 1; scanner.Scan(); l++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch {
		case classifiers == nil:
			for _, f := range fields {
				classifiers = append(classifiers, feature.Classifier(f))
			}
		case m == nil:
			var err error
			m, err = feature.NewMetadata(feature.Attributes(fields...), classifiers)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "parsing header on line %d", l)
			}
		default:
			instance, err := parseInstance(fields, m)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "parsing line %d", l)
			}
			instances = append(instances, instance)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "reading text dataset")
	}
	if m == nil {
		return nil, nil, errors.New("reading text dataset: missing classifier or attribute header line")
	}
	return sg(instances), m, nil
}

/*
ReadDatasetFromFilePath takes a filepath string and a dataset.Generator,
opens the file to which the filepath points to and uses ReadDataset to return
a dataset and its metadata or an error read from it. If the filepath is ""
os.Stdin is read instead. It will return an error if the given filepath
cannot be opened for reading.
*/
func ReadDatasetFromFilePath(filepath string, sg dataset.Generator) (dataset.Dataset, *feature.Metadata, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, nil, errors.Wrap(err, "reading dataset")
		}
		defer f.Close()
	}
	s, m, err := ReadDataset(f, sg)
	if err != nil {
		err = errors.Wrapf(err, "parsing text file %s", filepath)
	}
	return s, m, err
}

/*
ParseInstance takes a line with an instance in text format, that is, its
classifier followed by its values for the attributes in the given metadata,
and returns the parsed instance or an error.
*/
func ParseInstance(line string, m *feature.Metadata) (*dataset.Instance, error) {
	return parseInstance(strings.Fields(line), m)
}

func parseInstance(fields []string, m *feature.Metadata) (*dataset.Instance, error) {
	if len(fields) != len(m.Attributes)+1 {
		return nil, fmt.Errorf("expected a classifier and %d values, got %d fields", len(m.Attributes), len(fields))
	}
	c := feature.Classifier(fields[0])
	if !m.Accepts(c) {
		return nil, fmt.Errorf("undeclared classifier %s", c)
	}
	values := make(map[feature.Attribute]bool, len(m.Attributes))
	for i, a := range m.Attributes {
		v, err := strconv.ParseBool(fields[i+1])
		if err != nil {
			return nil, fmt.Errorf("invalid value %q for attribute %s: not a boolean", fields[i+1], a)
		}
		values[a] = v
	}
	return dataset.NewInstance(values, c), nil
}

/*
WriteDataset takes an io.Writer, a dataset and its metadata and dumps the
dataset onto the writer in text format, including the header lines. It
returns an error if an instance lacks a value for an attribute in the
metadata or something goes wrong when writing.
*/
func WriteDataset(w io.Writer, s dataset.Dataset, m *feature.Metadata) error {
	bw := bufio.NewWriter(w)
	classifiers := make([]string, 0, len(m.Classifiers))
	for _, c := range m.Classifiers {
		classifiers = append(classifiers, c.String())
	}
	if len(classifiers) == 0 {
		for _, cc := range s.CountClassifiers() {
			classifiers = append(classifiers, cc.Classifier.String())
		}
	}
	attributes := make([]string, 0, len(m.Attributes))
	for _, a := range m.Attributes {
		attributes = append(attributes, a.Name())
	}
	_, err := fmt.Fprintf(bw, "%s\n%s\n", strings.Join(classifiers, " "), strings.Join(attributes, " "))
	if err != nil {
		return errors.Wrap(err, "writing text header")
	}
	for i, instance := range s.Instances() {
		line, err := FormatInstance(instance, m)
		if err != nil {
			return errors.Wrapf(err, "writing instance %d", i+1)
		}
		_, err = fmt.Fprintln(bw, line)
		if err != nil {
			return errors.Wrapf(err, "writing instance %d", i+1)
		}
	}
	return bw.Flush()
}

/*
FormatInstance takes an instance and metadata and returns the instance
formatted as a line in text format, without the line break.
*/
func FormatInstance(instance *dataset.Instance, m *feature.Metadata) (string, error) {
	fields := make([]string, 0, len(m.Attributes)+1)
	fields = append(fields, instance.Classifier().String())
	for _, a := range m.Attributes {
		v, err := instance.ValueFor(a)
		if err != nil {
			return "", err
		}
		fields = append(fields, strconv.FormatBool(v))
	}
	return strings.Join(fields, " "), nil
}
