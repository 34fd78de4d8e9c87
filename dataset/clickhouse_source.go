package dataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/tomnetutc/tmd-sub000/config"
	"hermannm.dev/wrap"
)

// ClickHouseSource reads dataset families from warehouse tables instead of CSV
// exports. Survey tables are stored with String columns mirroring the CSV
// contract, so rows come back in the same string-typed shape as the HTTP source.
type ClickHouseSource struct {
	conn   driver.Conn
	tables map[Family]string
}

func NewClickHouseSource(config config.ClickHouse) (ClickHouseSource, error) {
	// Options docs: https://clickhouse.com/docs/en/integrations/go#connection-settings
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{config.Address},
		Auth: clickhouse.Auth{
			Database: config.DatabaseName,
			Username: config.Username,
			Password: config.Password,
		},
		Debug: config.Debug,
		Debugf: func(format string, v ...any) {
			fmt.Printf(format+"\n", v...)
		},
		Compression: &clickhouse.Compression{Method: clickhouse.CompressionLZ4},
	})
	if err != nil {
		return ClickHouseSource{}, wrap.Error(err, "failed to connect to ClickHouse")
	}

	return ClickHouseSource{
		conn: conn,
		tables: map[Family]string{
			FamilyTimeUse:    config.TimeUseTable,
			FamilyTravel:     config.TravelTable,
			FamilyTrips:      config.TripsTable,
			FamilyDayPattern: config.DayPatternTable,
		},
	}, nil
}

func (source ClickHouseSource) FetchRows(ctx context.Context, family Family) ([]Row, error) {
	table, ok := source.tables[family]
	if !ok || table == "" {
		return nil, fmt.Errorf("no ClickHouse table configured for family '%v'", family)
	}

	var query strings.Builder
	query.WriteString("SELECT * FROM ")
	if err := writeIdentifier(&query, table); err != nil {
		return nil, wrap.Error(err, "invalid table name")
	}

	results, err := source.conn.Query(ctx, query.String())
	if err != nil {
		return nil, wrap.Error(err, "dataset query against ClickHouse failed")
	}
	defer results.Close()

	columns := results.Columns()

	var rows []Row
	for results.Next() {
		values := make([]string, len(columns))
		scanTargets := make([]any, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}

		if err := results.Scan(scanTargets...); err != nil {
			return nil, wrap.Error(err, "failed to scan dataset row from ClickHouse")
		}

		row := make(Row, len(columns))
		for i, column := range columns {
			row[column] = values[i]
		}
		rows = append(rows, row)
	}

	if err := results.Err(); err != nil {
		return nil, wrap.Error(err, "failed to read dataset rows from ClickHouse")
	}

	return rows, nil
}

func writeIdentifier(writer *strings.Builder, identifier string) error {
	if !strings.ContainsRune(identifier, '`') {
		writer.WriteRune('`')
		writer.WriteString(identifier)
		writer.WriteRune('`')
		return nil
	}

	if !strings.ContainsRune(identifier, '"') {
		writer.WriteRune('"')
		writer.WriteString(identifier)
		writer.WriteRune('"')
		return nil
	}

	return fmt.Errorf(
		"'%s' contains both \" and `, which is incompatible with database",
		identifier,
	)
}
