/*
Package yaml provides methods to parse feature.Metadata specifications
from YAML documents.
*/
package yaml

import (
	"fmt"
	"io/ioutil"

	"github.com/pbanos/sapling/feature"
	yaml "gopkg.in/yaml.v2"
)

/*
ReadMetadata takes a slice of bytes with a metadata specification in YML and
returns the metadata parsed from it or an error.
The YML is expected to be an object containing an attributes property with
the list of attribute names, in the order trees should consider them, and
optionally a classes property with the list of valid labels.
*/
func ReadMetadata(md []byte) (*feature.Metadata, error) {
	metadata := struct {
		Attributes []string
		Classes    []string
	}{}
	err := yaml.Unmarshal(md, &metadata)
	if err != nil {
		return nil, fmt.Errorf("parsing yml metadata: %v", err)
	}
	if len(metadata.Attributes) == 0 {
		return nil, fmt.Errorf("metadata file has no attribute information")
	}
	classifiers := make([]feature.Classifier, 0, len(metadata.Classes))
	for _, c := range metadata.Classes {
		classifiers = append(classifiers, feature.Classifier(c))
	}
	return feature.NewMetadata(feature.Attributes(metadata.Attributes...), classifiers)
}

/*
ReadMetadataFromFile takes a filepath string, reads its contents and uses
ReadMetadata to parse it and return the parsed metadata or an error.
If the file indicated by the filepath cannot be opened for reading an error
will be returned.
*/
func ReadMetadataFromFile(filepath string) (*feature.Metadata, error) {
	md, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading metadata yml file %s: %v", filepath, err)
	}
	m, err := ReadMetadata(md)
	if err != nil {
		err = fmt.Errorf("parsing metadata yml file %s: %v", filepath, err)
	}
	return m, err
}
