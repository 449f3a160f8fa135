// SPDX-License-Identifier: MIT

package covariance_test

import (
	"fmt"

	"github.com/aleaf/pestools-1/covariance"
	"github.com/aleaf/pestools-1/matrix"
)

func ExampleEngine_Estimate() {
	jac, _ := matrix.NewLabeled(
		[][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 1, 0}, {0, 1, 1}},
		[]string{"h1", "h2", "h3", "q1", "q2"},
		[]string{"hk", "rch", "sy"},
	)
	w := []float64{1, 1, 1, 1, 1}

	est, err := covariance.New().Estimate(jac, w, 2)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("dof:", est.DOF, "scale:", est.Scale, "solver:", est.Solver)
	for _, row := range est.Covariance.Values() {
		fmt.Printf("%6.3f %6.3f %6.3f\n", row[0], row[1], row[2])
	}

	// Output:
	// dof: 2 scale: 1 solver: cholesky
	//  0.625 -0.250  0.125
	// -0.250  0.500 -0.250
	//  0.125 -0.250  0.625
}
