/*
Package sqldataset loads datasets from and stores datasets on SQL
database tables.

A table holds an instance per row, with a text column for its classifier
and a boolean column per attribute named after it. Boolean columns may
also hold the integers 0 and 1 or text parseable by strconv.ParseBool,
so tables created by other tools can be loaded as well.
*/
package sqldataset

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
	"github.com/pkg/errors"
)

/*
Adapter is an interface providing the methods needed to work
with a specific database backend.

Its DB method returns the connection to the database.

Its ColumnName method takes a table, column or attribute name and returns it
quoted as an identifier for the backend, or an error if the name cannot be
used as one.

Its Placeholder method takes the 1-based position of a query parameter and
returns its placeholder for the backend.
*/
type Adapter interface {
	DB() *sql.DB
	ColumnName(string) (string, error)
	Placeholder(int) string
}

/*
Read takes a context, an Adapter, a table name, the name of the column
holding the classifier, the metadata for the dataset and a dataset.Generator
and returns the dataset built with the generator from the rows of the table.

Only the classifier column and the columns for attributes in the metadata
are selected. An error is returned if the query fails, if a row holds a
classifier the metadata does not accept or a value that cannot be taken
as a boolean.
*/
func Read(ctx context.Context, a Adapter, table, classifierColumn string, m *feature.Metadata, sg dataset.Generator) (dataset.Dataset, error) {
	query, err := selectStatement(a, table, classifierColumn, m.Attributes)
	if err != nil {
		return nil, err
	}
	rows, err := a.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrapf(err, "querying table %s", table)
	}
	defer rows.Close()
	var instances []*dataset.Instance
	for n := 1; rows.Next(); n++ {
		values := make([]interface{}, len(m.Attributes)+1)
		pointers := make([]interface{}, len(values))
		for i := range values {
			pointers[i] = &values[i]
		}
		err = rows.Scan(pointers...)
		if err != nil {
			return nil, errors.Wrapf(err, "scanning row %d of table %s", n, table)
		}
		instance, err := newInstance(values, m)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d of table %s", n, table)
		}
		instances = append(instances, instance)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading rows of table %s", table)
	}
	return sg(instances), nil
}

/*
Write takes a context, an Adapter, a table name, the name for the column
holding the classifier, a dataset and its metadata, creates the table if it
does not exist and inserts every instance of the dataset on it in a single
transaction. It returns an error if any statement fails, in which case no
instance is inserted.
*/
func Write(ctx context.Context, a Adapter, table, classifierColumn string, s dataset.Dataset, m *feature.Metadata) error {
	create, err := createStatement(a, table, classifierColumn, m.Attributes)
	if err != nil {
		return err
	}
	insert, err := insertStatement(a, table, classifierColumn, m.Attributes)
	if err != nil {
		return err
	}
	tx, err := a.DB().BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	_, err = tx.ExecContext(ctx, create)
	if err != nil {
		tx.Rollback()
		return errors.Wrapf(err, "creating table %s", table)
	}
	for i, instance := range s.Instances() {
		args := make([]interface{}, 0, len(m.Attributes)+1)
		args = append(args, instance.Classifier().String())
		for _, attr := range m.Attributes {
			v, err := instance.ValueFor(attr)
			if err != nil {
				tx.Rollback()
				return errors.Wrapf(err, "instance %d", i+1)
			}
			args = append(args, v)
		}
		_, err = tx.ExecContext(ctx, insert, args...)
		if err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "inserting instance %d on table %s", i+1, table)
		}
	}
	return errors.Wrap(tx.Commit(), "committing transaction")
}

func columnNames(a Adapter, classifierColumn string, attributes []feature.Attribute) ([]string, error) {
	columns := make([]string, 0, len(attributes)+1)
	for _, name := range append([]string{classifierColumn}, attributeNames(attributes)...) {
		column, err := a.ColumnName(name)
		if err != nil {
			return nil, err
		}
		columns = append(columns, column)
	}
	return columns, nil
}

func attributeNames(attributes []feature.Attribute) []string {
	names := make([]string, 0, len(attributes))
	for _, a := range attributes {
		names = append(names, a.Name())
	}
	return names
}

func selectStatement(a Adapter, table, classifierColumn string, attributes []feature.Attribute) (string, error) {
	t, err := a.ColumnName(table)
	if err != nil {
		return "", err
	}
	columns, err := columnNames(a, classifierColumn, attributes)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(columns, ", "), t), nil
}

func createStatement(a Adapter, table, classifierColumn string, attributes []feature.Attribute) (string, error) {
	t, err := a.ColumnName(table)
	if err != nil {
		return "", err
	}
	columns, err := columnNames(a, classifierColumn, attributes)
	if err != nil {
		return "", err
	}
	definitions := make([]string, 0, len(columns))
	definitions = append(definitions, columns[0]+" TEXT NOT NULL")
	for _, c := range columns[1:] {
		definitions = append(definitions, c+" BOOLEAN NOT NULL")
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", t, strings.Join(definitions, ", ")), nil
}

func insertStatement(a Adapter, table, classifierColumn string, attributes []feature.Attribute) (string, error) {
	t, err := a.ColumnName(table)
	if err != nil {
		return "", err
	}
	columns, err := columnNames(a, classifierColumn, attributes)
	if err != nil {
		return "", err
	}
	placeholders := make([]string, 0, len(columns))
	for i := range columns {
		placeholders = append(placeholders, a.Placeholder(i+1))
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", t, strings.Join(columns, ", "), strings.Join(placeholders, ", ")), nil
}

func newInstance(values []interface{}, m *feature.Metadata) (*dataset.Instance, error) {
	var c feature.Classifier
	switch v := values[0].(type) {
	case string:
		c = feature.Classifier(v)
	case []byte:
		c = feature.Classifier(v)
	default:
		return nil, fmt.Errorf("classifier has unexpected type %T", values[0])
	}
	if !m.Accepts(c) {
		return nil, fmt.Errorf("undeclared classifier %s", c)
	}
	attributeValues := make(map[feature.Attribute]bool, len(m.Attributes))
	for i, a := range m.Attributes {
		v, err := toBool(values[i+1])
		if err != nil {
			return nil, fmt.Errorf("value for attribute %s: %v", a, err)
		}
		attributeValues[a] = v
	}
	return dataset.NewInstance(attributeValues, c), nil
}

func toBool(value interface{}) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case int64:
		if v == 0 || v == 1 {
			return v == 1, nil
		}
	case []byte:
		return strconv.ParseBool(string(v))
	case string:
		return strconv.ParseBool(v)
	case nil:
		return false, fmt.Errorf("missing value")
	}
	return false, fmt.Errorf("%v of type %T is not a boolean", value, value)
}

/*
QuoteIdentifier takes a name and returns it double-quoted for use as
an SQL identifier, or an error if the name is empty or contains a
double quote.
*/
func QuoteIdentifier(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty names cannot be used as identifiers")
	}
	if strings.ContainsAny(name, `"`) {
		return "", fmt.Errorf(`name '%s' contains invalid character '"'`, name)
	}
	return `"` + name + `"`, nil
}
