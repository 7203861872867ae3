package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/refdash/refdash/internal/calculation"
	"github.com/refdash/refdash/internal/domain"
	"github.com/refdash/refdash/pkg/dateutil"
)

// Portfolio is a fully materialized portfolio snapshot: engine configuration
// plus the referral, investment and lead collections with derived fields
// computed.
type Portfolio struct {
	Cycle       domain.CycleConfig
	Rates       domain.RateTable
	Referrals   []domain.Referral
	Investments []domain.PersonalInvestment
	Leads       []domain.Lead
}

// Engine returns a calculation engine configured from the portfolio file.
func (p *Portfolio) Engine() *calculation.Engine {
	return calculation.NewEngineWithConfig(p.Cycle, p.Rates)
}

// portfolioFile mirrors the YAML document. Dates travel as strings so that
// unparseable input surfaces dateutil.ErrInvalidDate instead of a zero time.
type portfolioFile struct {
	Cycle           *domain.CycleConfig     `yaml:"cycle"`
	CommissionRates map[int]decimal.Decimal `yaml:"commission_rates"`
	Referrals       []referralInput         `yaml:"referrals"`
	Investments     []investmentInput       `yaml:"investments"`
	Leads           []leadInput             `yaml:"leads"`
}

type referralInput struct {
	ID         string                `yaml:"id"`
	Name       string                `yaml:"name"`
	Wallet     string                `yaml:"wallet"`
	Generation int                   `yaml:"generation"`
	Amount     decimal.Decimal       `yaml:"amount"`
	CycleDays  int                   `yaml:"cycle_days"`
	StartDate  string                `yaml:"start_date"`
	Status     domain.ReferralStatus `yaml:"status"`
	ReferrerID string                `yaml:"referrer_id"`
	CycleCount int                   `yaml:"cycle_count"`
}

type investmentInput struct {
	ID         string                `yaml:"id"`
	Amount     decimal.Decimal       `yaml:"amount"`
	CycleDays  int                   `yaml:"cycle_days"`
	StartDate  string                `yaml:"start_date"`
	Status     domain.ReferralStatus `yaml:"status"`
	CycleCount int                   `yaml:"cycle_count"`
}

type leadInput struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Phone       string            `yaml:"phone"`
	Email       string            `yaml:"email"`
	Status      domain.LeadStatus `yaml:"status"`
	Notes       string            `yaml:"notes"`
	ContactDate string            `yaml:"contact_date"`
	LastContact string            `yaml:"last_contact"`
	Source      string            `yaml:"source"`
}

// InputParser handles parsing and validation of portfolio files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a portfolio from a YAML file, validates it and computes
// every derived field.
func (ip *InputParser) LoadFromFile(filename string) (*Portfolio, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Load(data)
}

// Load parses a portfolio from raw YAML.
func (ip *InputParser) Load(data []byte) (*Portfolio, error) {
	var file portfolioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	portfolio := &Portfolio{
		Cycle: domain.DefaultCycleConfig(),
		Rates: domain.DefaultRateTable(),
	}
	if file.Cycle != nil {
		portfolio.Cycle = *file.Cycle
	}
	if len(file.CommissionRates) > 0 {
		portfolio.Rates = domain.RateTable(file.CommissionRates)
	}
	if err := ip.validateConfig(portfolio); err != nil {
		return nil, fmt.Errorf("portfolio validation failed: %w", err)
	}

	engine := portfolio.Engine()

	for i, in := range file.Referrals {
		ref, err := ip.buildReferral(engine, in)
		if err != nil {
			return nil, fmt.Errorf("referral %d (%s): %w", i, in.Name, err)
		}
		if ref.ID == "" {
			ref.ID = fmt.Sprintf("ref-%d", i+1)
		}
		portfolio.Referrals = append(portfolio.Referrals, ref)
	}

	for i, in := range file.Investments {
		inv, err := ip.buildInvestment(engine, in)
		if err != nil {
			return nil, fmt.Errorf("investment %d: %w", i, err)
		}
		if inv.ID == "" {
			inv.ID = fmt.Sprintf("inv-%d", i+1)
		}
		portfolio.Investments = append(portfolio.Investments, inv)
	}

	for i, in := range file.Leads {
		lead, err := ip.buildLead(in)
		if err != nil {
			return nil, fmt.Errorf("lead %d (%s): %w", i, in.Name, err)
		}
		if lead.ID == "" {
			lead.ID = fmt.Sprintf("lead-%d", i+1)
		}
		portfolio.Leads = append(portfolio.Leads, lead)
	}

	return portfolio, nil
}

func (ip *InputParser) validateConfig(p *Portfolio) error {
	if p.Cycle.CycleDays <= 0 {
		return fmt.Errorf("cycle_days must be positive, got %d", p.Cycle.CycleDays)
	}
	if p.Cycle.EarningsRate.IsNegative() {
		return fmt.Errorf("earnings_rate cannot be negative, got %s", p.Cycle.EarningsRate)
	}
	for gen, rate := range p.Rates {
		if gen < 1 {
			return fmt.Errorf("commission rate configured for non-positive generation %d", gen)
		}
		if rate.IsNegative() {
			return fmt.Errorf("commission rate for generation %d cannot be negative, got %s", gen, rate)
		}
	}
	return nil
}

func (ip *InputParser) buildReferral(engine *calculation.Engine, in referralInput) (domain.Referral, error) {
	if in.Name == "" {
		return domain.Referral{}, fmt.Errorf("name is required")
	}
	start, err := dateutil.Parse(in.StartDate)
	if err != nil {
		return domain.Referral{}, fmt.Errorf("start_date: %w", err)
	}

	ref, err := engine.NewReferral(in.Name, in.Wallet, in.Generation, in.Amount, start)
	if err != nil {
		return domain.Referral{}, err
	}
	ref.ID = in.ID
	ref.ReferrerID = in.ReferrerID
	ref.CycleCount = in.CycleCount
	if in.CycleDays > 0 {
		ref.CycleDays = in.CycleDays
		ref.Expiration = calculation.ExpirationDate(start, in.CycleDays)
	}
	if in.Status != "" {
		if !domain.ValidReferralStatus(in.Status) {
			return domain.Referral{}, fmt.Errorf("unknown status %q", in.Status)
		}
		ref.Status = in.Status
	}
	return ref, nil
}

func (ip *InputParser) buildInvestment(engine *calculation.Engine, in investmentInput) (domain.PersonalInvestment, error) {
	start, err := dateutil.Parse(in.StartDate)
	if err != nil {
		return domain.PersonalInvestment{}, fmt.Errorf("start_date: %w", err)
	}

	inv := engine.NewInvestment(in.Amount, start)
	inv.ID = in.ID
	inv.CycleCount = in.CycleCount
	if in.CycleDays > 0 {
		inv.CycleDays = in.CycleDays
		inv.Expiration = calculation.ExpirationDate(start, in.CycleDays)
	}
	if in.Status != "" {
		if !domain.ValidReferralStatus(in.Status) {
			return domain.PersonalInvestment{}, fmt.Errorf("unknown status %q", in.Status)
		}
		inv.Status = in.Status
	}
	return inv, nil
}

func (ip *InputParser) buildLead(in leadInput) (domain.Lead, error) {
	if in.Name == "" {
		return domain.Lead{}, fmt.Errorf("name is required")
	}
	status := in.Status
	if status == "" {
		status = domain.LeadStatusInterested
	}
	if !domain.ValidLeadStatus(status) {
		return domain.Lead{}, fmt.Errorf("unknown status %q", in.Status)
	}

	lead := domain.Lead{
		ID:     in.ID,
		Name:   in.Name,
		Phone:  in.Phone,
		Email:  in.Email,
		Status: status,
		Notes:  in.Notes,
		Source: in.Source,
	}
	if in.ContactDate != "" {
		contact, err := dateutil.Parse(in.ContactDate)
		if err != nil {
			return domain.Lead{}, fmt.Errorf("contact_date: %w", err)
		}
		lead.ContactDate = contact
	}
	if in.LastContact != "" {
		last, err := dateutil.Parse(in.LastContact)
		if err != nil {
			return domain.Lead{}, fmt.Errorf("last_contact: %w", err)
		}
		lead.LastContact = &last
	}
	return lead, nil
}
