package db

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap 以 JSON 文本形式存储任意嵌套的页面区块。
type JSONMap map[string]any

// Value implements driver.Valuer.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan implements sql.Scanner.
func (m *JSONMap) Scan(value any) error {
	return scanJSON(value, m)
}

// StringList 以 JSON 数组形式存储标签等字符串列表。
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	raw, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value any) error {
	return scanJSON(value, l)
}

// PageCount 是汇总文档里单个页面的计数。
type PageCount struct {
	Views       uint64 `json:"views"`
	UniqueViews uint64 `json:"unique_views"`
}

// PageCountMap 按页面标识聚合浏览计数。
type PageCountMap map[string]PageCount

// Value implements driver.Valuer.
func (m PageCountMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan implements sql.Scanner.
func (m *PageCountMap) Scan(value any) error {
	return scanJSON(value, m)
}

func scanJSON(value, dst any) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported column type %T", value)
	}
}
