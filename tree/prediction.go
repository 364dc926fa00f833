package tree

import (
	"fmt"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
)

/*
Prediction represents a prediction made by a decision tree: a classifier
along its probability, that is, the fraction of the training instances it
was computed from that were labeled with the classifier.
*/
type Prediction struct {
	classifier  feature.Classifier
	probability float64
	weight      int
}

// PredictionError represents an error related with predictions
type PredictionError string

/*
ErrCannotPredictFromEmptySet is the error returned when trying to build a prediction
based on an empty dataset.
*/
const ErrCannotPredictFromEmptySet = PredictionError("cannot make prediction for empty dataset")

func (pe PredictionError) Error() string {
	return string(pe)
}

/*
NewPrediction takes a classifier, its probability and an integer with the number
of instances in the dataset from which the probability was computed and returns
a prediction representing those values.
*/
func NewPrediction(c feature.Classifier, probability float64, weight int) *Prediction {
	return &Prediction{c, probability, weight}
}

/*
NewPredictionFromSet takes a dataset and returns the baseline prediction for it:
the most frequent classifier among its instances along its frequency. When several
classifiers are equally frequent, the one encountered first in the dataset wins.
It returns ErrCannotPredictFromEmptySet if there are no instances in the dataset.
*/
func NewPredictionFromSet(s dataset.Dataset) (*Prediction, error) {
	weight := s.Count()
	if weight == 0 {
		return nil, ErrCannotPredictFromEmptySet
	}
	var best dataset.ClassifierCount
	for _, cc := range s.CountClassifiers() {
		if cc.Count > best.Count {
			best = cc
		}
	}
	return &Prediction{best.Classifier, float64(best.Count) / float64(weight), weight}, nil
}

/*
PredictedValue returns the predicted classifier and a float64 with
its probability
*/
func (p *Prediction) PredictedValue() (feature.Classifier, float64) {
	return p.classifier, p.probability
}

// Classifier returns the predicted classifier.
func (p *Prediction) Classifier() feature.Classifier {
	return p.classifier
}

// Probability returns the probability of the predicted classifier.
func (p *Prediction) Probability() float64 {
	return p.probability
}

/*
Weight returns the weight of the prediction: an
int equal to the number of instances in the dataset from which
the prediction was made
*/
func (p *Prediction) Weight() int {
	return p.weight
}

/*
Accuracy takes a dataset and returns the fraction of its instances labeled
with the predicted classifier, that is, the accuracy of always predicting it.
It returns ErrCannotPredictFromEmptySet for an empty dataset.
*/
func (p *Prediction) Accuracy(s dataset.Dataset) (float64, error) {
	count := s.Count()
	if count == 0 {
		return 0.0, ErrCannotPredictFromEmptySet
	}
	var hits int
	for _, cc := range s.CountClassifiers() {
		if cc.Classifier == p.classifier {
			hits += cc.Count
		}
	}
	return float64(hits) / float64(count), nil
}

func (p *Prediction) String() string {
	return fmt.Sprintf("%s (%s)", p.classifier, Percentage(p.probability))
}
