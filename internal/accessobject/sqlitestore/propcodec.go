package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mlmd/store/internal/mdtypes"
)

// propertyRow mirrors one row of a *_properties table. The three
// entity kinds share an identical property-table shape, so artifact,
// execution, and context property I/O all go through these helpers
// rather than three copy-pasted implementations.
type propertyRow struct {
	Name        string
	IsCustom    bool
	DataType    mdtypes.PropertyType
	IntValue    sql.NullInt64
	DoubleValue sql.NullFloat64
	StringValue sql.NullString
	StructValue sql.NullString
}

func loadProperties(ctx context.Context, q queryExecer, table, idCol string, id int64) (props, custom map[string]mdtypes.PropertyValue, err error) {
	query := fmt.Sprintf(`SELECT name, is_custom, data_type, int_value, double_value, string_value, struct_value FROM %s WHERE %s = ?`, table, idCol)
	rows, err := q.QueryContext(ctx, query, id)
	if err != nil {
		return nil, nil, fmt.Errorf("load properties from %s: %w", table, err)
	}
	defer rows.Close()

	props = map[string]mdtypes.PropertyValue{}
	custom = map[string]mdtypes.PropertyValue{}
	for rows.Next() {
		var r propertyRow
		var isCustom int
		var dataType int
		if err := rows.Scan(&r.Name, &isCustom, &dataType, &r.IntValue, &r.DoubleValue, &r.StringValue, &r.StructValue); err != nil {
			return nil, nil, fmt.Errorf("scan property from %s: %w", table, err)
		}
		r.IsCustom = isCustom != 0
		r.DataType = mdtypes.PropertyType(dataType)

		pv := mdtypes.PropertyValue{Kind: r.DataType}
		switch r.DataType {
		case mdtypes.PropertyTypeInt:
			pv.IntValue = r.IntValue.Int64
		case mdtypes.PropertyTypeDouble:
			pv.DoubleValue = r.DoubleValue.Float64
		case mdtypes.PropertyTypeString:
			pv.StringValue = r.StringValue.String
		case mdtypes.PropertyTypeStruct:
			if r.StructValue.Valid {
				var m map[string]any
				if err := json.Unmarshal([]byte(r.StructValue.String), &m); err != nil {
					return nil, nil, fmt.Errorf("decode struct property %q: %w", r.Name, err)
				}
				pv.StructValue = m
			}
		}

		if r.IsCustom {
			custom[r.Name] = pv
		} else {
			props[r.Name] = pv
		}
	}
	return props, custom, rows.Err()
}

func writeProperties(ctx context.Context, q queryExecer, table, idCol string, id int64, props, custom map[string]mdtypes.PropertyValue) error {
	for name, pv := range props {
		if err := upsertProperty(ctx, q, table, idCol, id, name, false, pv); err != nil {
			return err
		}
	}
	for name, pv := range custom {
		if err := upsertProperty(ctx, q, table, idCol, id, name, true, pv); err != nil {
			return err
		}
	}
	return nil
}

func upsertProperty(ctx context.Context, q queryExecer, table, idCol string, id int64, name string, isCustom bool, pv mdtypes.PropertyValue) error {
	var intVal, doubleVal, strVal, structVal any
	switch pv.Kind {
	case mdtypes.PropertyTypeInt:
		intVal = pv.IntValue
	case mdtypes.PropertyTypeDouble:
		doubleVal = pv.DoubleValue
	case mdtypes.PropertyTypeString:
		strVal = pv.StringValue
	case mdtypes.PropertyTypeStruct:
		b, err := json.Marshal(pv.StructValue)
		if err != nil {
			return fmt.Errorf("encode struct property %q: %w", name, err)
		}
		structVal = string(b)
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (%s, name, is_custom, data_type, int_value, double_value, string_value, struct_value)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(%s, name, is_custom) DO UPDATE SET
		   data_type = excluded.data_type,
		   int_value = excluded.int_value,
		   double_value = excluded.double_value,
		   string_value = excluded.string_value,
		   struct_value = excluded.struct_value`,
		table, idCol, idCol,
	)
	isCustomInt := 0
	if isCustom {
		isCustomInt = 1
	}
	_, err := q.ExecContext(ctx, query, id, name, isCustomInt, int(pv.Kind), intVal, doubleVal, strVal, structVal)
	if err != nil {
		return fmt.Errorf("upsert property %q on %s: %w", name, table, err)
	}
	return nil
}
