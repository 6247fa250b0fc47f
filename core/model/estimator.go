package model

import "gonum.org/v1/gonum/mat"

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる。y は n×1 の列ベクトル
	Fit(X, y mat.Matrix) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を n×1 で返す
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Model は教師あり学習モデルの基本インターフェース
type Model interface {
	Fitter
	Predictor
}

// Scorer はスコアを計算できるモデルのインターフェース
type Scorer interface {
	// Score は回帰なら R²、分類なら正解率を返す
	Score(X, y mat.Matrix) (float64, error)
}

// Estimator は学習・予測・評価をまとめたインターフェース
type Estimator interface {
	Model
	Scorer
	IsFitted() bool
}

// ParamsHolder はハイパーパラメータを map で取得・設定できるモデル
type ParamsHolder interface {
	GetParams() map[string]interface{}
	SetParams(params map[string]interface{}) error
}
