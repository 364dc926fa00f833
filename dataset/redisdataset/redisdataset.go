/*
Package redisdataset loads datasets from and stores datasets on
redis lists.

A list holds a dataset in the format of the text package, one line
per element: the classifier line, then the attribute line, then one
element per instance.
*/
package redisdataset

import (
	"bytes"
	"context"
	"strings"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/dataset/text"
	"github.com/pbanos/sapling/feature"
	"github.com/pkg/errors"
	redis "gopkg.in/redis.v5"
)

/*
Read takes a context, a redis client, a key and a dataset.Generator and
returns the dataset held in the list at the key, built with the generator,
along its metadata. It returns an error if the list cannot be retrieved or
its elements are not a valid dataset.
*/
func Read(ctx context.Context, rc *redis.Client, key string, sg dataset.Generator) (dataset.Dataset, *feature.Metadata, error) {
	lines, err := rc.LRange(key, 0, -1).Result()
	if err != nil {
		return nil, nil, errors.Wrapf(err, "retrieving list %q", key)
	}
	if err = ctx.Err(); err != nil {
		return nil, nil, err
	}
	s, m, err := text.ReadDataset(strings.NewReader(strings.Join(lines, "\n")), sg)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "parsing list %q", key)
	}
	return s, m, nil
}

/*
Write takes a context, a redis client, a key, a dataset and its metadata and
replaces the list at the key with the dataset. It returns an error if an
instance lacks a value for an attribute of the metadata or a redis command
fails.
*/
func Write(ctx context.Context, rc *redis.Client, key string, s dataset.Dataset, m *feature.Metadata) error {
	values, err := listElements(s, m)
	if err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}
	if err = rc.Del(key).Err(); err != nil {
		return errors.Wrapf(err, "deleting list %q", key)
	}
	if err = rc.RPush(key, values...).Err(); err != nil {
		return errors.Wrapf(err, "pushing to list %q", key)
	}
	return nil
}

// listElements returns the lines of the dataset in text format.
func listElements(s dataset.Dataset, m *feature.Metadata) ([]interface{}, error) {
	buf := &bytes.Buffer{}
	err := text.WriteDataset(buf, s, m)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	values := make([]interface{}, 0, len(lines))
	for _, l := range lines {
		values = append(values, l)
	}
	return values, nil
}
