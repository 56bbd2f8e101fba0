package factstore

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/domain"
)

// flexNumber accepts a JSON number, a numeric string, or null. Invalid is set
// when a value was present but could not be read as a finite number.
type flexNumber struct {
	Value   float64
	Present bool
	Invalid bool
}

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	n.Present = true

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			n.Invalid = true
			return nil
		}
		s = strings.TrimSpace(s)
		if s == "" {
			n.Present = false
			return nil
		}
		n.parse(s)
		return nil
	}

	n.parse(string(data))
	return nil
}

// parse rejects NaN and the infinities, which ParseFloat accepts by name.
func (n *flexNumber) parse(s string) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !finite(v) {
		n.Invalid = true
		return
	}
	n.Value = v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (n flexNumber) MarshalJSON() ([]byte, error) {
	if !n.Present {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

func number(v float64) flexNumber {
	return flexNumber{Value: v, Present: true}
}

// flexString accepts a JSON string or number, as record ids are stored both
// ways.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	*s = flexString(string(data))
	return nil
}

type debtorRecord struct {
	Name          string     `json:"name,omitempty"`
	CustomerName  string     `json:"customerName,omitempty"`
	Balance       flexNumber `json:"balance"`
	TotalDue      flexNumber `json:"totalDue"`
	TotalPaid     flexNumber `json:"totalPaid"`
	RepaymentDate string     `json:"repaymentDate,omitempty"`
}

func (r debtorRecord) toDomain() (domain.Debtor, bool) {
	if r.Balance.Invalid {
		return domain.Debtor{}, false
	}
	balance := r.Balance.Value
	if !r.Balance.Present {
		if r.TotalDue.Invalid || r.TotalPaid.Invalid {
			return domain.Debtor{}, false
		}
		balance = r.TotalDue.Value - r.TotalPaid.Value
		if !finite(balance) {
			return domain.Debtor{}, false
		}
	}
	return domain.Debtor{
		Name:          firstNonEmpty(r.Name, r.CustomerName),
		Balance:       balance,
		RepaymentDate: r.RepaymentDate,
	}, true
}

type creditorRecord struct {
	Name         string     `json:"name,omitempty"`
	CustomerName string     `json:"customerName,omitempty"`
	Balance      flexNumber `json:"balance"`
	TotalDue     flexNumber `json:"totalDue"`
	LastPurchase string     `json:"lastPurchase,omitempty"`
}

func (r creditorRecord) toDomain() (domain.Creditor, bool) {
	if r.Balance.Invalid {
		return domain.Creditor{}, false
	}
	balance := r.Balance.Value
	if !r.Balance.Present {
		if r.TotalDue.Invalid {
			return domain.Creditor{}, false
		}
		balance = r.TotalDue.Value
	}
	return domain.Creditor{
		Name:         firstNonEmpty(r.Name, r.CustomerName),
		Balance:      balance,
		LastPurchase: r.LastPurchase,
	}, true
}

type goodRecord struct {
	ID            flexString `json:"id"`
	Name          string     `json:"name,omitempty"`
	StockQuantity flexNumber `json:"stock_quantity"`
	StockLevel    flexNumber `json:"stockLevel"`
}

func (r goodRecord) toDomain() (domain.Good, bool) {
	stock := r.StockQuantity
	if !stock.Present {
		stock = r.StockLevel
	}
	if stock.Invalid {
		return domain.Good{}, false
	}
	return domain.Good{
		ID:            string(r.ID),
		Name:          r.Name,
		StockQuantity: stock.Value,
	}, true
}

type saleRecord struct {
	Date      string     `json:"date,omitempty"`
	CreatedAt string     `json:"createdAt,omitempty"`
	Total     flexNumber `json:"total"`
	Status    string     `json:"status,omitempty"`
}

func (r saleRecord) toDomain() (domain.Sale, bool) {
	if r.Total.Invalid {
		return domain.Sale{}, false
	}
	return domain.Sale{
		Date:   firstNonEmpty(r.Date, r.CreatedAt),
		Total:  r.Total.Value,
		Status: r.Status,
	}, true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
