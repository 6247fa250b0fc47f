package metrics

import (
	"gonum.org/v1/gonum/mat"
)

// Accuracy は予測ラベルが正解と完全一致した割合を返す
//
// ラベルは実数として比較する。{-1, 0, +1} の符号出力では 0 は常に不正解になる。
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("Accuracy", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// ErrorRate は 1 - Accuracy を返す（誤分類率）
func ErrorRate(yTrue, yPred *mat.VecDense) (float64, error) {
	acc, err := Accuracy(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1 - acc, nil
}

// AccuracyMatrix は n×1 行列版の Accuracy
func AccuracyMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	a, err := ColumnVector("AccuracyMatrix", yTrue)
	if err != nil {
		return 0, err
	}
	b, err := ColumnVector("AccuracyMatrix", yPred)
	if err != nil {
		return 0, err
	}
	return Accuracy(a, b)
}
