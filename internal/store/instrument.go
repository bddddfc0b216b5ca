// Package store persists instrument definitions so downstream jobs can
// resolve symbology without replaying a session.
package store

import (
	"context"
	"time"

	"gorm.io/gorm/clause"

	"marketwire/internal/schema"
	"marketwire/pkg/conn"
	"marketwire/pkg/exception"
)

// InstrumentRow is the persisted shape of an instrument definition. Rows are
// keyed by dataset and instrument id; a later definition for the same key
// replaces the earlier one.
type InstrumentRow struct {
	Dataset      string `gorm:"primaryKey;size:24"`
	InstrumentID uint32 `gorm:"primaryKey"`

	RawSymbol       string `gorm:"size:71;index"`
	Exchange        string `gorm:"size:5"`
	Asset           string `gorm:"size:11"`
	Currency        string `gorm:"size:4"`
	SecurityType    string `gorm:"size:7"`
	InstrumentClass string `gorm:"size:16"`

	MinPriceIncrement  int64
	ContractMultiplier int32
	Expiration         int64
	Activation         int64
	TsEvent            int64

	UpdatedAt time.Time
}

func (InstrumentRow) TableName() string { return "instrument_definitions" }

// Instruments is the instrument-definition store.
type Instruments struct {
	client *conn.Client
}

// NewInstruments migrates the schema and returns the store.
func NewInstruments(client *conn.Client) (*Instruments, error) {
	if client == nil || client.DB() == nil {
		return nil, exception.ErrNilInstance
	}
	if err := client.DB().AutoMigrate(&InstrumentRow{}); err != nil {
		return nil, err
	}
	return &Instruments{client: client}, nil
}

// Upsert inserts or replaces the definition for (dataset, instrument id).
func (s *Instruments) Upsert(ctx context.Context, dataset string, def schema.InstrumentDef) error {
	row := rowFromDef(dataset, def)
	return s.client.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "dataset"}, {Name: "instrument_id"}},
			UpdateAll: true,
		}).
		Create(&row).Error
}

// Get returns the definition row for (dataset, instrument id).
func (s *Instruments) Get(ctx context.Context, dataset string, instrumentID uint32) (InstrumentRow, error) {
	var row InstrumentRow
	err := s.client.DB().WithContext(ctx).
		Where("dataset = ? AND instrument_id = ?", dataset, instrumentID).
		Take(&row).Error
	return row, err
}

// BySymbol returns every definition row carrying the raw symbol.
func (s *Instruments) BySymbol(ctx context.Context, dataset, rawSymbol string) ([]InstrumentRow, error) {
	var rows []InstrumentRow
	err := s.client.DB().WithContext(ctx).
		Where("dataset = ? AND raw_symbol = ?", dataset, rawSymbol).
		Order("instrument_id").
		Find(&rows).Error
	return rows, err
}

func rowFromDef(dataset string, def schema.InstrumentDef) InstrumentRow {
	return InstrumentRow{
		Dataset:            dataset,
		InstrumentID:       def.Hdr.InstrumentID,
		RawSymbol:          def.RawSymbol,
		Exchange:           def.Exchange,
		Asset:              def.Asset,
		Currency:           def.Currency,
		SecurityType:       def.SecurityType,
		InstrumentClass:    def.InstrumentClass.String(),
		MinPriceIncrement:  int64(def.MinPriceIncrement),
		ContractMultiplier: def.ContractMultiplier,
		Expiration:         int64(def.Expiration),
		Activation:         int64(def.Activation),
		TsEvent:            int64(def.Hdr.TsEvent),
	}
}
