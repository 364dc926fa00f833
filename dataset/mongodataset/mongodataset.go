/*
Package mongodataset loads datasets from and stores datasets on
MongoDB collections.

Every document in the collection holds an instance: a field with its
classifier and a boolean field per attribute named after it.
*/
package mongodataset

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
	"github.com/pkg/errors"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

const (
	// DefaultCollectionName is the collection instances are read from and
	// written to when no other is given
	DefaultCollectionName = "instances"
)

/*
Read takes a context, a MongoDB session, a collection name, the name of the
field holding the classifier, the metadata for the dataset and a
dataset.Generator and returns a dataset built with the generator from the
documents in the collection of the session's default database.

An error is returned if a field name is not valid, the query fails, or a
document lacks a field, holds a classifier the metadata does not accept or
holds a value that cannot be taken as a boolean for an attribute.
*/
func Read(ctx context.Context, session *mgo.Session, collection, classifierField string, m *feature.Metadata, sg dataset.Generator) (dataset.Dataset, error) {
	selector, err := projection(classifierField, m.Attributes)
	if err != nil {
		return nil, err
	}
	iter := session.DB("").C(collection).Find(nil).Select(selector).Iter()
	var instances []*dataset.Instance
	var doc bson.M
	for n := 1; iter.Next(&doc); n++ {
		if err = ctx.Err(); err != nil {
			iter.Close()
			return nil, err
		}
		instance, err := newInstance(doc, classifierField, m)
		if err != nil {
			iter.Close()
			return nil, errors.Wrapf(err, "document %d of collection %s", n, collection)
		}
		instances = append(instances, instance)
		doc = nil
	}
	if err = iter.Close(); err != nil {
		return nil, errors.Wrapf(err, "reading collection %s", collection)
	}
	return sg(instances), nil
}

/*
Write takes a context, a MongoDB session, a collection name, the name for the
field holding the classifier, a dataset and its metadata and inserts a document
per instance on the collection of the session's default database. It returns
an error if a field name is not valid, an instance lacks a value or the insertion
fails.
*/
func Write(ctx context.Context, session *mgo.Session, collection, classifierField string, s dataset.Dataset, m *feature.Metadata) error {
	if _, err := projection(classifierField, m.Attributes); err != nil {
		return err
	}
	instances := s.Instances()
	docs := make([]interface{}, 0, len(instances))
	for i, instance := range instances {
		doc := bson.M{classifierField: instance.Classifier().String()}
		for _, a := range m.Attributes {
			v, err := instance.ValueFor(a)
			if err != nil {
				return errors.Wrapf(err, "instance %d", i+1)
			}
			doc[a.Name()] = v
		}
		docs = append(docs, doc)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(docs) == 0 {
		return nil
	}
	return errors.Wrapf(session.DB("").C(collection).Insert(docs...), "inserting on collection %s", collection)
}

func projection(classifierField string, attributes []feature.Attribute) (bson.M, error) {
	selector := bson.M{"_id": 0}
	for _, name := range append([]string{classifierField}, attributeNames(attributes)...) {
		if err := validFieldName(name); err != nil {
			return nil, err
		}
		selector[name] = 1
	}
	return selector, nil
}

func attributeNames(attributes []feature.Attribute) []string {
	names := make([]string, 0, len(attributes))
	for _, a := range attributes {
		names = append(names, a.Name())
	}
	return names
}

func validFieldName(name string) error {
	if name == "" {
		return fmt.Errorf("invalid empty field name")
	}
	if name == "_id" {
		return fmt.Errorf("invalid field name %q: reserved collection field", "_id")
	}
	if strings.ContainsAny(name, ".$") {
		return fmt.Errorf("invalid field name %q: contains reserved characters %q or %q", name, ".", "$")
	}
	return nil
}

func newInstance(doc bson.M, classifierField string, m *feature.Metadata) (*dataset.Instance, error) {
	raw, ok := doc[classifierField]
	if !ok {
		return nil, fmt.Errorf("missing classifier field %s", classifierField)
	}
	c := feature.Classifier(fmt.Sprintf("%v", raw))
	if !m.Accepts(c) {
		return nil, fmt.Errorf("undeclared classifier %s", c)
	}
	values := make(map[feature.Attribute]bool, len(m.Attributes))
	for _, a := range m.Attributes {
		raw, ok := doc[a.Name()]
		if !ok {
			return nil, fmt.Errorf("missing field for attribute %s", a)
		}
		v, err := toBool(raw)
		if err != nil {
			return nil, fmt.Errorf("value for attribute %s: %v", a, err)
		}
		values[a] = v
	}
	return dataset.NewInstance(values, c), nil
}

func toBool(value interface{}) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case int:
		if v == 0 || v == 1 {
			return v == 1, nil
		}
	case int64:
		if v == 0 || v == 1 {
			return v == 1, nil
		}
	case string:
		return strconv.ParseBool(v)
	}
	return false, fmt.Errorf("%v of type %T is not a boolean", value, value)
}
