package xlsxform

import (
	"time"

	"github.com/ukaji3/xlsxform-go/pkg/xlsxform/models"
	"github.com/ukaji3/xlsxform-go/pkg/xlsxform/output"
	"github.com/ukaji3/xlsxform-go/pkg/xlsxform/parser"
	"go.uber.org/zap"
)

// Convert reads the template at inputPath and writes its field document to
// outputPath. Either the whole document is written or outputPath is left
// untouched and an error is returned.
func Convert(inputPath, outputPath string, opts Options) error {
	logger := opts.logger().With(
		zap.String("component", "convert"),
		zap.String("input", inputPath),
	)
	start := time.Now()

	result, err := Read(inputPath, opts)
	if err != nil {
		logFailure(logger, err)
		return err
	}

	data, err := output.Encode(result, opts.Format, opts.Pretty)
	if err != nil {
		err = NewConversionError("encode", inputPath, err)
		logFailure(logger, err)
		return err
	}

	if err := output.WriteFile(opts.fs(), outputPath, data); err != nil {
		err = NewConversionError("write", outputPath, err)
		logFailure(logger, err)
		return err
	}

	logger.Debug("Conversion complete",
		zap.String("output", outputPath),
		zap.Int("fields", result.Len()),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// Read runs the read, classify and extract stages and returns the assembled
// result without writing anything.
func Read(inputPath string, opts Options) (models.ConversionResult, error) {
	logger := opts.logger().With(zap.String("component", "reader"))

	classifier, err := parser.NewClassifier(opts.policy())
	if err != nil {
		return models.ConversionResult{}, NewConversionError("classify", inputPath, err)
	}

	wb, err := parser.Open(opts.fs(), inputPath, parser.ReadOptions{
		Sheet:      opts.Sheet,
		MinColumns: classifier.InputColumn(),
	})
	if err != nil {
		return models.ConversionResult{}, NewConversionError("read", inputPath, err)
	}
	sheet := wb.First()
	logger.Debug("Workbook opened",
		zap.String("book", wb.Name),
		zap.String("sheet", sheet.Name),
		zap.Int("rows", len(sheet.Rows)),
	)

	items := classifier.Classify(sheet)
	fields, err := parser.ExtractAll(items)
	if err != nil {
		return models.ConversionResult{}, NewConversionError("extract", inputPath, err)
	}

	return output.Assemble(fields), nil
}

func logFailure(logger *zap.Logger, err error) {
	logger.Warn("Conversion failed",
		zap.String("kind", string(KindOf(err))),
		zap.Error(err),
	)
}
