package service

import (
	"fmt"
	"time"

	"go-shop-ledger/internal/ledger"
	"go-shop-ledger/internal/metrics"
	"go-shop-ledger/internal/model"
	"go-shop-ledger/internal/report"
	"go-shop-ledger/internal/repository"

	"go.uber.org/zap"
)

// MsgNoSales is returned instead of sending an empty report.
const MsgNoSales = "No sales for this date"

// Mailer delivers a rendered report.
type Mailer interface {
	Send(msg report.Message) error
	Recipient() string
}

// CloseResult is the outcome of closing a day's bill.
type CloseResult struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Report  *report.DailyReport `json:"report,omitempty"`
}

type ReportService interface {
	Report(date string) (report.DailyReport, error)
	CloseBill(date string) (*CloseResult, error)
	Export(date string) ([]byte, error)
}

type reportService struct {
	ledger   LedgerService
	billRepo repository.BillRepository
	mailer   Mailer
	notifier Notifier
	metrics  *metrics.Metrics
	log      *zap.Logger
	now      func() time.Time
}

// NewReportService builds the reporting service. A nil mailer disables
// CloseBill.
func NewReportService(l LedgerService, bRepo repository.BillRepository, mailer Mailer, notifier Notifier, m *metrics.Metrics, log *zap.Logger) ReportService {
	return &reportService{
		ledger:   l,
		billRepo: bRepo,
		mailer:   mailer,
		notifier: notifier,
		metrics:  m,
		log:      log.Named("report"),
		now:      time.Now,
	}
}

func (s *reportService) Report(date string) (report.DailyReport, error) {
	sum, err := s.ledger.Summary(date)
	if err != nil {
		return report.DailyReport{}, err
	}
	return report.NewDailyReport(date, ledger.Project(sum)), nil
}

// CloseBill emails the day's report once. A day without events is answered
// with MsgNoSales and is not closed.
func (s *reportService) CloseBill(date string) (*CloseResult, error) {
	if _, err := ledger.ParseDate(date); err != nil {
		return nil, err
	}
	if s.mailer == nil {
		return nil, ErrMailDisabled
	}

	var result *CloseResult
	err := s.ledger.WithBillsLocked(func() error {
		var err error
		result, err = s.closeBill(date)
		return err
	})
	return result, err
}

// closeBill runs with the bill closures locked. A SyncError comes back
// together with the result.
func (s *reportService) closeBill(date string) (*CloseResult, error) {
	existing, err := s.billRepo.FindByDate(date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.metrics.Rejected.WithLabelValues("close_bill", reason(ErrAlreadyClosed)).Inc()
		return nil, fmt.Errorf("%w: %s at %s", ErrAlreadyClosed, date, existing.ClosedAt.Format(time.RFC3339))
	}

	events, err := s.ledger.Day(date)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return &CloseResult{Success: false, Message: MsgNoSales}, nil
	}

	rep, err := s.Report(date)
	if err != nil {
		return nil, err
	}
	msg, err := rep.Message()
	if err != nil {
		return nil, err
	}
	if err := s.mailer.Send(msg); err != nil {
		s.metrics.ReportsSent.WithLabelValues("failed").Inc()
		s.log.Error("report not sent", zap.String("date", date), zap.Error(err))
		return nil, err
	}
	s.metrics.ReportsSent.WithLabelValues("sent").Inc()
	s.log.Info("report sent",
		zap.String("date", date),
		zap.String("to", s.mailer.Recipient()),
		zap.Int("units", rep.TotalUnits),
	)

	result := &CloseResult{Success: true, Message: "Email sent", Report: &rep}
	bill := &model.BillClosure{
		Date:       date,
		Recipient:  s.mailer.Recipient(),
		TotalUnits: rep.TotalUnits,
		ClosedAt:   s.now(),
	}
	var syncErr error
	if err := s.billRepo.Create(bill); err != nil {
		s.metrics.SyncFailures.Inc()
		s.log.Error("bill closure not persisted", zap.String("date", date), zap.Error(err))
		syncErr = &SyncError{Op: "close_bill", Err: err}
	}

	if s.notifier != nil {
		s.notifier.Publish(map[string]interface{}{
			"type":        "ledger_update",
			"action":      "bill_closed",
			"date":        date,
			"total_units": rep.TotalUnits,
		})
	}
	return result, syncErr
}

func (s *reportService) Export(date string) ([]byte, error) {
	sum, err := s.ledger.Summary(date)
	if err != nil {
		return nil, err
	}
	return report.Workbook(date, sum)
}
