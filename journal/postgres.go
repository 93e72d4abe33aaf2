package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type entryModel struct {
	EntryID     string              `gorm:"primaryKey"`
	SessionID   string              `gorm:"index;not null"`
	PositionID  string              `gorm:"index;not null"`
	Symbol      string              `gorm:"index;not null"`
	Time        time.Time           `gorm:"index;not null"`
	Kind        string              `gorm:"not null"`
	Side        string              `gorm:"not null"`
	Action      string              `gorm:"not null"`
	Reason      string              `gorm:"not null"`
	Price       decimal.Decimal     `gorm:"type:decimal(20,8);not null"`
	Quantity    int64               `gorm:"not null"`
	Balance     decimal.Decimal     `gorm:"type:decimal(20,8);not null"`
	PnL         decimal.NullDecimal `gorm:"type:decimal(20,8)"`
	EntryPrice  decimal.Decimal     `gorm:"type:decimal(20,8);not null"`
	StopLoss    decimal.Decimal     `gorm:"type:decimal(20,8);not null"`
	TargetPrice decimal.Decimal     `gorm:"type:decimal(20,8);not null"`
}

func (entryModel) TableName() string { return "entries" }

type balanceModel struct {
	SessionID string          `gorm:"primaryKey"`
	Seq       int             `gorm:"primaryKey;autoIncrement:false"`
	Time      time.Time       `gorm:"index;not null"`
	Balance   decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Equity    decimal.Decimal `gorm:"type:decimal(20,8);not null"`
}

func (balanceModel) TableName() string { return "balances" }

type sessionModel struct {
	SessionID    string              `gorm:"primaryKey"`
	Created      time.Time           `gorm:"not null"`
	Symbol       string              `gorm:"index;not null"`
	Recommender  string              `gorm:"not null"`
	Feed         string              `gorm:"not null"`
	RiskPct      decimal.Decimal     `gorm:"type:decimal(20,8);not null"`
	StartTime    time.Time           `gorm:"not null"`
	EndTime      time.Time           `gorm:"not null"`
	Trades       int                 `gorm:"not null"`
	Wins         int                 `gorm:"not null"`
	Losses       int                 `gorm:"not null"`
	StartBalance decimal.Decimal     `gorm:"type:decimal(20,8);not null"`
	EndBalance   decimal.Decimal     `gorm:"type:decimal(20,8);not null"`
	NetPL        decimal.Decimal     `gorm:"type:decimal(20,8);not null"`
	ReturnPct    decimal.Decimal     `gorm:"type:decimal(20,8);not null"`
	WinRate      decimal.Decimal     `gorm:"type:decimal(20,8);not null"`
	AvgWin       decimal.NullDecimal `gorm:"type:decimal(20,8)"`
	MaxDDPct     decimal.Decimal     `gorm:"type:decimal(20,8);not null"`
	Notes        string
}

func (sessionModel) TableName() string { return "sessions" }

// Postgres persists the journal through gorm.
type Postgres struct {
	db *gorm.DB
}

// NewPostgres connects to dsn and migrates the journal tables.
func NewPostgres(dsn string) (*Postgres, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return NewPostgresDB(db)
}

// NewPostgresDB wraps an open gorm handle.
func NewPostgresDB(db *gorm.DB) (*Postgres, error) {
	if err := db.AutoMigrate(&entryModel{}, &balanceModel{}, &sessionModel{}); err != nil {
		return nil, fmt.Errorf("migrate journal: %w", err)
	}
	return &Postgres{db: db}, nil
}

func (j *Postgres) RecordEntry(e EntryRecord) error {
	m := toEntryModel(e)
	return j.db.Create(&m).Error
}

func (j *Postgres) RecordBalance(b BalanceSnapshot) error {
	m := toBalanceModel(b)
	return j.db.Create(&m).Error
}

func (j *Postgres) RecordSession(s Session) error {
	m := toSessionModel(s)
	return j.db.Save(&m).Error
}

func (j *Postgres) ListEntries(sessionID string) ([]EntryRecord, error) {
	var rows []entryModel
	q := j.db.Order("session_id, entry_id")
	if sessionID != "" {
		q = q.Where("session_id = ?", sessionID)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]EntryRecord, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.record())
	}
	return out, nil
}

func (j *Postgres) ListBalances(sessionID string) ([]BalanceSnapshot, error) {
	var rows []balanceModel
	if err := j.db.Where("session_id = ?", sessionID).Order("seq").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]BalanceSnapshot, 0, len(rows))
	for _, m := range rows {
		out = append(out, BalanceSnapshot(m))
	}
	return out, nil
}

func (j *Postgres) ListSessions() ([]Session, error) {
	var rows []sessionModel
	if err := j.db.Order("session_id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]Session, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.record())
	}
	return out, nil
}

func (j *Postgres) Close() error {
	sqlDB, err := j.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toEntryModel(e EntryRecord) entryModel {
	return entryModel{
		EntryID:     e.EntryID,
		SessionID:   e.SessionID,
		PositionID:  e.PositionID,
		Symbol:      e.Symbol,
		Time:        e.Time,
		Kind:        e.Kind,
		Side:        e.Side,
		Action:      e.Action,
		Reason:      e.Reason,
		Price:       e.Price,
		Quantity:    e.Quantity,
		Balance:     e.Balance,
		PnL:         e.PnL,
		EntryPrice:  e.EntryPrice,
		StopLoss:    e.StopLoss,
		TargetPrice: e.TargetPrice,
	}
}

func (m entryModel) record() EntryRecord {
	return EntryRecord{
		EntryID:     m.EntryID,
		SessionID:   m.SessionID,
		PositionID:  m.PositionID,
		Symbol:      m.Symbol,
		Time:        m.Time,
		Kind:        m.Kind,
		Side:        m.Side,
		Action:      m.Action,
		Reason:      m.Reason,
		Price:       m.Price,
		Quantity:    m.Quantity,
		Balance:     m.Balance,
		PnL:         m.PnL,
		EntryPrice:  m.EntryPrice,
		StopLoss:    m.StopLoss,
		TargetPrice: m.TargetPrice,
	}
}

func toBalanceModel(b BalanceSnapshot) balanceModel {
	return balanceModel(b)
}

func toSessionModel(s Session) sessionModel {
	return sessionModel{
		SessionID:    s.SessionID,
		Created:      s.Created,
		Symbol:       s.Symbol,
		Recommender:  s.Recommender,
		Feed:         s.Feed,
		RiskPct:      s.RiskPct,
		StartTime:    s.Start,
		EndTime:      s.End,
		Trades:       s.Trades,
		Wins:         s.Wins,
		Losses:       s.Losses,
		StartBalance: s.StartBalance,
		EndBalance:   s.EndBalance,
		NetPL:        s.NetPL,
		ReturnPct:    s.ReturnPct,
		WinRate:      s.WinRate,
		AvgWin:       s.AvgWin,
		MaxDDPct:     s.MaxDDPct,
		Notes:        strings.Join(s.Notes, "\n"),
	}
}

func (m sessionModel) record() Session {
	s := Session{
		SessionID:    m.SessionID,
		Created:      m.Created,
		Symbol:       m.Symbol,
		Recommender:  m.Recommender,
		Feed:         m.Feed,
		RiskPct:      m.RiskPct,
		Start:        m.StartTime,
		End:          m.EndTime,
		Trades:       m.Trades,
		Wins:         m.Wins,
		Losses:       m.Losses,
		StartBalance: m.StartBalance,
		EndBalance:   m.EndBalance,
		NetPL:        m.NetPL,
		ReturnPct:    m.ReturnPct,
		WinRate:      m.WinRate,
		AvgWin:       m.AvgWin,
		MaxDDPct:     m.MaxDDPct,
	}
	if m.Notes != "" {
		s.Notes = strings.Split(m.Notes, "\n")
	}
	return s
}
