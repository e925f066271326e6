package journal

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iancoleman/orderedmap"
	"github.com/xeipuuv/gojsonschema"
	"golang.org/x/text/unicode/norm"
)

// ErrFormat means the document is absent, not JSON, or lacks the journals field.
var ErrFormat = errors.New("invalid journal document format")

// Схема документа: объект с обязательным полем journals —
// массивом мапов name -> code (значения строго строки)
const documentSchema = `{
	"type": "object",
	"required": ["journals"],
	"properties": {
		"journals": {
			"type": "array",
			"items": {
				"type": "object",
				"additionalProperties": { "type": "string" }
			}
		}
	}
}`

var schemaLoader = gojsonschema.NewStringLoader(documentSchema)

// Parse разворачивает документ {"journals":[{name:code},...]} в плоский
// список записей. Каждая пара ключ/значение каждого элемента даёт одну
// запись, порядок документа сохраняется (включая порядок ключей внутри
// элемента). Пустые имена и коды пропускаются дальше без проверок.
func Parse(data []byte) ([]Record, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrFormat)
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if !result.Valid() {
		detail := "schema violation"
		if errs := result.Errors(); len(errs) > 0 {
			detail = errs[0].String()
		}
		return nil, fmt.Errorf("%w: %s", ErrFormat, detail)
	}

	var doc struct {
		Journals []orderedmap.OrderedMap `json:"journals"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	records := make([]Record, 0, len(doc.Journals))
	for _, entry := range doc.Journals {
		for _, name := range entry.Keys() {
			v, _ := entry.Get(name)
			code, _ := v.(string)
			records = append(records, Record{
				Name: norm.NFC.String(name),
				Code: code,
			})
		}
	}
	return records, nil
}
