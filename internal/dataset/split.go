package dataset

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// Split partitions samples into train and test sets using a seeded
// permutation. The first ceil(testFraction*n) permuted indices form the test
// set. The input slice is left untouched.
func Split(samples []Sample, testFraction float64, seed int64) (train, test []Sample, err error) {
	if len(samples) == 0 {
		return nil, nil, ErrEmptyTable
	}
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, fmt.Errorf("split: test fraction must be in (0,1) (got %g)", testFraction)
	}
	nTest := int(math.Ceil(testFraction * float64(len(samples))))
	nTrain := len(samples) - nTest
	if nTest == 0 || nTrain == 0 {
		return nil, nil, errors.New("split: partition leaves an empty side")
	}

	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(len(samples))

	test = make([]Sample, 0, nTest)
	for _, idx := range perm[:nTest] {
		test = append(test, samples[idx])
	}
	train = make([]Sample, 0, nTrain)
	for _, idx := range perm[nTest:] {
		train = append(train, samples[idx])
	}
	return train, test, nil
}
