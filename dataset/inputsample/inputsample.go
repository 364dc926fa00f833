/*
Package inputsample provides an implementation of feature.Sample whose
values are read from an io.Reader.
*/
package inputsample

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pbanos/sapling/feature"
)

/*
readSample represents a sample whose attribute values
are retrieved from a reader. An attribute value will be
requested using a ValueRequester before reading it.
*/
type readSample struct {
	obtainedValues map[feature.Attribute]bool
	scanner        *bufio.Scanner
	valueRequester ValueRequester
	attributes     []feature.Attribute
}

/*
ValueRequester represents a way to ask
for attribute values and reject the given values.
*/
type ValueRequester interface {
	RequestValueFor(feature.Attribute) error
	RejectValueFor(feature.Attribute, string) error
}

/*
New takes an io.Reader, a slice of attributes and a ValueRequester
and returns a feature.Sample.

The returned Sample ValueFor method reads attribute values first
requesting them with the given ValueRequester and then parsing the
values from the reader, so only the values actually needed to
classify the sample are asked for. Each value is read once.

The parsing expects each value to be presented ending with the
'\n' character, that is in new lines. Lines will be read until one
holding a boolean is found: anything strconv.ParseBool accepts, or
yes, y, no and n in any case. Other lines are rejected with the
ValueRequester's RejectValueFor method.

Attempting to obtain a value for an attribute not in the given
attributes slice returns an error.
*/
func New(r io.Reader, attributes []feature.Attribute, valueRequester ValueRequester) feature.Sample {
	scanner := bufio.NewScanner(r)
	return &readSample{make(map[feature.Attribute]bool), scanner, valueRequester, attributes}
}

func (rs *readSample) ValueFor(a feature.Attribute) (bool, error) {
	value, ok := rs.obtainedValues[a]
	if ok {
		return value, nil
	}
	known := false
	for _, attribute := range rs.attributes {
		if attribute == a {
			known = true
			break
		}
	}
	if !known {
		return false, fmt.Errorf("have no information about attribute %s, do not know how to read its value", a)
	}
	err := rs.valueRequester.RequestValueFor(a)
	if err != nil {
		return false, err
	}
	for rs.scanner.Scan() {
		line := strings.TrimSpace(rs.scanner.Text())
		value, err = parseBool(line)
		if err == nil {
			rs.obtainedValues[a] = value
			return value, nil
		}
		err = rs.valueRequester.RejectValueFor(a, line)
		if err != nil {
			return false, err
		}
	}
	err = rs.scanner.Err()
	if err != nil {
		return false, err
	}
	return false, fmt.Errorf("EOF when requesting value for %s", a)
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return strconv.ParseBool(s)
}
