package model

import (
	"encoding/gob"
	"io"
	"os"

	"github.com/YuminosukeSato/gboost/pkg/errors"
)

// SaveModel はモデルを gob 形式でファイルに保存する
//
// インターフェース型のフィールド（例: アンサンブルの弱学習器）を含む場合、
// 具象型を事前に gob.Register しておく必要がある。sklearn/tree は init で登録済み。
//
// 使用例:
//
//	clf := ensemble.NewBoostingClassifier()
//	// ... 学習 ...
//	err := model.SaveModel(clf.Ensemble(), "moons.gob")
func SaveModel(model interface{}, filename string) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", filename)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "failed to close model file")
		}
	}()
	return SaveModelToWriter(model, file)
}

// LoadModel はファイルからモデルを読み込む（model はポインタ）
func LoadModel(model interface{}, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", filename)
	}
	defer file.Close()
	return LoadModelFromReader(model, file)
}

// SaveModelToWriter はモデルを io.Writer に保存する
func SaveModelToWriter(model interface{}, w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(model); err != nil {
		return errors.Wrap(err, "failed to encode model")
	}
	return nil
}

// LoadModelFromReader は io.Reader からモデルを読み込む
func LoadModelFromReader(model interface{}, r io.Reader) error {
	if err := gob.NewDecoder(r).Decode(model); err != nil {
		return errors.Wrap(err, "failed to decode model")
	}
	return nil
}
