package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/dataset/csv"
	"github.com/pbanos/sapling/dataset/mongodataset"
	"github.com/pbanos/sapling/dataset/redisdataset"
	"github.com/pbanos/sapling/dataset/sqldataset"
	"github.com/pbanos/sapling/dataset/sqldataset/pgadapter"
	"github.com/pbanos/sapling/dataset/sqldataset/sqlite3adapter"
	"github.com/pbanos/sapling/dataset/text"
	"github.com/pbanos/sapling/feature"
	"github.com/pbanos/sapling/feature/yaml"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	mgo "gopkg.in/mgo.v2"
	redis "gopkg.in/redis.v5"
)

const (
	defaultClassColumn = "class"
	defaultTable       = "instances"
)

/*
datasetConfig holds the flags shared by the commands that read
datasets: where metadata comes from, how the classifier column,
table, collection or key is named, and which dataset implementation
to use.
*/
type datasetConfig struct {
	metadataInput      string
	classColumn        string
	table              string
	cpuIntensiveSet    bool
	memoryIntensiveSet bool
	metadata           *feature.Metadata
}

func (dc *datasetConfig) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&(dc.metadataInput), "metadata", "m", "", "path to a YML file with metadata declaring the attributes and classes of the data (required for SQL and MongoDB inputs)")
	cmd.Flags().StringVarP(&(dc.classColumn), "class-column", "c", "", "name of the column or field holding the class of each instance (defaults to the first column for CSV and to 'class' for SQL and MongoDB)")
	cmd.Flags().StringVar(&(dc.table), "table", defaultTable, "name of the SQL table, MongoDB collection or redis key holding the instances")
	cmd.Flags().BoolVar(&(dc.memoryIntensiveSet), "memory-intensive", false, "force the use of memory-intensive subsetting to decrease time at the cost of increasing memory use")
	cmd.Flags().BoolVar(&(dc.cpuIntensiveSet), "cpu-intensive", false, "force the use of cpu-intensive subsetting to decrease memory use at the cost of increasing time")
}

func (dc *datasetConfig) Validate() error {
	if dc.cpuIntensiveSet && dc.memoryIntensiveSet {
		return fmt.Errorf("cannot set both memory-intensive and cpu-intensive flags at the same time")
	}
	return nil
}

func (dc *datasetConfig) datasetGenerator() dataset.Generator {
	if dc.memoryIntensiveSet {
		return dataset.NewMemoryIntensive
	}
	if dc.cpuIntensiveSet {
		return dataset.NewCPUIntensive
	}
	return dataset.New
}

/*
readMetadata reads the metadata file if one was given. It returns
nil metadata and no error otherwise.
*/
func (dc *datasetConfig) readMetadata() (*feature.Metadata, error) {
	if dc.metadataInput == "" || dc.metadata != nil {
		return dc.metadata, nil
	}
	log.Debugf("Reading metadata from %s...", dc.metadataInput)
	m, err := yaml.ReadMetadataFromFile(dc.metadataInput)
	if err != nil {
		return nil, err
	}
	dc.metadata = m
	return m, nil
}

/*
readDataset takes a context and an input, and returns the dataset read from
the input along its metadata. The input is interpreted as follows:
  - "": text format on STDIN
  - postgresql:// URLs: table on a PostgreSQL database
  - paths ending in .db: table on an SQLite3 database file
  - mongodb:// URLs: collection on a MongoDB database
  - redis:// URLs: list on a redis database
  - paths ending in .csv: CSV file
  - anything else: text format file
When a metadata file was given, instances are checked to have values for
its attributes and to be labeled with its classes, and the returned metadata
is the one in the file.
*/
func (dc *datasetConfig) readDataset(ctx context.Context, input string) (dataset.Dataset, *feature.Metadata, error) {
	m, err := dc.readMetadata()
	if err != nil {
		return nil, nil, err
	}
	sg := dc.datasetGenerator()
	var s dataset.Dataset
	var inputMetadata *feature.Metadata
	switch {
	case strings.HasPrefix(input, "postgresql://"), strings.HasSuffix(input, ".db"):
		if m == nil {
			return nil, nil, fmt.Errorf("required metadata flag was not set: SQL inputs need metadata")
		}
		adapter, err := dc.sqlAdapter(input)
		if err != nil {
			return nil, nil, err
		}
		defer adapter.DB().Close()
		log.Debugf("Reading table %s...", dc.table)
		s, err = sqldataset.Read(ctx, adapter, dc.table, dc.classColumnOr(defaultClassColumn), m, sg)
		if err != nil {
			return nil, nil, err
		}
		return s, m, nil
	case strings.HasPrefix(input, "mongodb://"):
		if m == nil {
			return nil, nil, fmt.Errorf("required metadata flag was not set: MongoDB inputs need metadata")
		}
		log.Debugf("Connecting to MongoDB at %s...", input)
		session, err := mgo.Dial(input)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to MongoDB: %v", err)
		}
		defer session.Close()
		log.Debugf("Reading collection %s...", dc.table)
		s, err = mongodataset.Read(ctx, session, dc.table, dc.classColumnOr(defaultClassColumn), m, sg)
		if err != nil {
			return nil, nil, err
		}
		return s, m, nil
	case strings.HasPrefix(input, "redis://"):
		rc, err := redisClient(input)
		if err != nil {
			return nil, nil, err
		}
		defer rc.Close()
		log.Debugf("Reading list %s...", dc.table)
		s, inputMetadata, err = redisdataset.Read(ctx, rc, dc.table, sg)
		if err != nil {
			return nil, nil, err
		}
	case strings.HasSuffix(input, ".csv"):
		log.Debugf("Reading CSV file %s...", input)
		s, inputMetadata, err = csv.ReadDatasetFromFilePath(input, dc.classColumn, sg)
		if err != nil {
			return nil, nil, err
		}
	default:
		if input == "" {
			log.Debugf("Reading dataset from STDIN...")
		} else {
			log.Debugf("Reading text file %s...", input)
		}
		s, inputMetadata, err = text.ReadDatasetFromFilePath(input, sg)
		if err != nil {
			return nil, nil, err
		}
	}
	if m == nil {
		return s, inputMetadata, nil
	}
	err = conformsTo(s, m)
	if err != nil {
		return nil, nil, err
	}
	return s, m, nil
}

/*
writeDataset takes a context, an output, a dataset and its metadata and
writes the dataset onto the output, interpreted like inputs are by
readDataset, with "" meaning STDOUT.
*/
func (dc *datasetConfig) writeDataset(ctx context.Context, output string, s dataset.Dataset, m *feature.Metadata) error {
	switch {
	case strings.HasPrefix(output, "postgresql://"), strings.HasSuffix(output, ".db"):
		adapter, err := dc.sqlAdapter(output)
		if err != nil {
			return err
		}
		defer adapter.DB().Close()
		log.Debugf("Writing table %s...", dc.table)
		return sqldataset.Write(ctx, adapter, dc.table, dc.classColumnOr(defaultClassColumn), s, m)
	case strings.HasPrefix(output, "mongodb://"):
		session, err := mgo.Dial(output)
		if err != nil {
			return fmt.Errorf("connecting to MongoDB: %v", err)
		}
		defer session.Close()
		log.Debugf("Writing collection %s...", dc.table)
		return mongodataset.Write(ctx, session, dc.table, dc.classColumnOr(defaultClassColumn), s, m)
	case strings.HasPrefix(output, "redis://"):
		rc, err := redisClient(output)
		if err != nil {
			return err
		}
		defer rc.Close()
		log.Debugf("Writing list %s...", dc.table)
		return redisdataset.Write(ctx, rc, dc.table, s, m)
	}
	var f *os.File
	if output == "" {
		f = os.Stdout
	} else {
		var err error
		f, err = os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
	}
	if strings.HasSuffix(output, ".csv") {
		log.Debugf("Writing CSV file %s...", output)
		return csv.WriteDataset(f, s, dc.classColumnOr(defaultClassColumn), m.Attributes)
	}
	log.Debugf("Writing text dataset...")
	return text.WriteDataset(f, s, m)
}

func (dc *datasetConfig) classColumnOr(name string) string {
	if dc.classColumn == "" {
		return name
	}
	return dc.classColumn
}

func (dc *datasetConfig) sqlAdapter(url string) (sqldataset.Adapter, error) {
	if strings.HasPrefix(url, "postgresql://") {
		log.Debugf("Creating PostgreSQL adapter for url %s...", url)
		return pgadapter.New(url)
	}
	log.Debugf("Creating SQLite3 adapter for file %s...", url)
	return sqlite3adapter.New(url)
}

func redisClient(url string) (*redis.Client, error) {
	log.Debugf("Connecting to redis at %s...", url)
	options, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %v", err)
	}
	return redis.NewClient(options), nil
}

func conformsTo(s dataset.Dataset, m *feature.Metadata) error {
	err := dataset.Validate(s, m.Attributes)
	if err != nil {
		return err
	}
	for _, cc := range s.CountClassifiers() {
		if !m.Accepts(cc.Classifier) {
			return fmt.Errorf("classifier %s is not declared in metadata", cc.Classifier)
		}
	}
	return nil
}
