package snapshot

import (
	"os"

	"github.com/wippyai/layoutview/errors"
	"github.com/wippyai/layoutview/typetable"
	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"
)

// importWIT registers every named type of a WIT resolve, in the JSON form
// written by `wasm-tools component wit --json`. Types without a guest memory
// layout, such as resources, are skipped.
func importWIT(table *typetable.Table, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Load("read WIT "+path, err)
	}
	defer f.Close()

	res, err := wit.DecodeJSON(f)
	if err != nil {
		return errors.Load("decode WIT "+path, err)
	}

	n := 0
	for _, td := range res.TypeDefs {
		if td.Name == nil || *td.Name == "" {
			continue
		}
		if _, err := table.ImportWIT(*td.Name, td); err != nil {
			Logger().Debug("WIT type skipped", zap.String("type", *td.Name), zap.Error(err))
			continue
		}
		n++
	}
	Logger().Debug("WIT types imported", zap.String("path", path), zap.Int("types", n))
	return nil
}
