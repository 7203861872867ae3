package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/refdash/refdash/pkg/dateutil"
)

// CSVFormatter renders the referral collection views as CSV: one summary row
// per top referral.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"Name", "Generation", "Amount", "Earnings", "UserIncome", "Status", "StartDate", "Expiration"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, ref := range report.TopReferrals {
		row := []string{
			ref.Name,
			strconv.Itoa(ref.Generation),
			ref.Amount.StringFixed(2),
			ref.Earnings.StringFixed(2),
			ref.UserIncome.StringFixed(2),
			string(ref.Status),
			ref.StartDate.Format(dateutil.Layout),
			ref.Expiration.Format(dateutil.Layout),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
