package schema

// Canonical field names accepted by the scoring endpoint.
const (
	FieldIntRate           = "int_rate"
	FieldTerm              = "term"
	FieldDTI               = "dti"
	FieldFICORangeHigh     = "fico_range_high"
	FieldAccOpenPast24Mths = "acc_open_past_24mths"
	FieldMoSinOldRevTLOp   = "mo_sin_old_rev_tl_op"
	FieldBCOpenToBuy       = "bc_open_to_buy"
	FieldMortAcc           = "mort_acc"
	FieldTotalBCLimit      = "total_bc_limit"
	FieldAvgCurBal         = "avg_cur_bal"
	FieldOpenRV24m         = "open_rv_24m"
)

var defaultFields = []FieldSpec{
	{
		Name:        FieldIntRate,
		Label:       "Interest Rate (%)",
		Min:         0,
		Max:         Bound(40),
		Step:        0.01,
		Placeholder: "e.g., 13.99",
		Tooltip:     "Annual interest rate for the loan (percentage).",
	},
	{
		Name:        FieldTerm,
		Label:       "Term (Months)",
		Min:         12,
		Max:         Bound(60),
		Step:        12,
		Placeholder: "e.g., 36",
		Tooltip:     "Length of the loan in months (typically 36 or 60).",
	},
	{
		Name:        FieldDTI,
		Label:       "Debt-to-Income Ratio (%)",
		Min:         0,
		Max:         Bound(50),
		Step:        0.01,
		Placeholder: "e.g., 18.5",
		Tooltip:     "Debt-to-Income Ratio (percentage, total monthly debt payments divided by gross monthly income).",
	},
	{
		Name:        FieldFICORangeHigh,
		Label:       "FICO Range High",
		Min:         300,
		Max:         Bound(850),
		Step:        1,
		Placeholder: "e.g., 720",
		Tooltip:     "Highest value of the applicant's FICO credit score range (between 300 and 850).",
	},
	{
		Name:        FieldAccOpenPast24Mths,
		Label:       "Accounts Opened (24m)",
		Min:         0,
		Max:         Bound(20),
		Step:        1,
		Placeholder: "e.g., 2",
		Tooltip:     "Number of accounts opened by the applicant in the past 24 months.",
	},
	{
		Name:        FieldMoSinOldRevTLOp,
		Label:       "Months Since Oldest Revolving TL",
		Min:         0,
		Max:         Bound(600),
		Step:        1,
		Placeholder: "e.g., 60",
		Tooltip:     "Months since the oldest revolving trade line (credit card) was opened.",
	},
	{
		Name:        FieldBCOpenToBuy,
		Label:       "Bankcard Open to Buy ($)",
		Min:         0,
		Max:         Bound(100000),
		Step:        1,
		Placeholder: "e.g., 4000",
		Tooltip:     "Available credit limit on bankcards ($).",
	},
	{
		Name:        FieldMortAcc,
		Label:       "Open Mortgage Accounts",
		Min:         0,
		Max:         Bound(20),
		Step:        1,
		Placeholder: "e.g., 1",
		Tooltip:     "Number of open mortgage accounts.",
	},
	{
		Name:        FieldTotalBCLimit,
		Label:       "Total Bankcard Limit ($)",
		Min:         0,
		Max:         Bound(100000),
		Step:        1,
		Placeholder: "e.g., 12000",
		Tooltip:     "Sum of all bankcard credit limits ($).",
	},
	{
		Name:        FieldAvgCurBal,
		Label:       "Average Current Balance ($)",
		Min:         0,
		Max:         Bound(100000),
		Step:        1,
		Placeholder: "e.g., 8500",
		Tooltip:     "Average current balance across all accounts ($).",
	},
	{
		Name:        FieldOpenRV24m,
		Label:       "Open Revolving Accounts (24m)",
		Min:         0,
		Max:         Bound(20),
		Step:        1,
		Placeholder: "e.g., 1",
		Tooltip:     "Number of revolving accounts opened in the last 24 months.",
	},
}

// Default returns the canonical eleven-field schema.
func Default() Schema {
	return MustNew(defaultFields...)
}

// DefaultMeans holds the population means shown next to applicant inputs.
func DefaultMeans() map[string]float64 {
	return map[string]float64{
		FieldIntRate:           11,
		FieldTerm:              36,
		FieldDTI:               19,
		FieldFICORangeHigh:     700,
		FieldAccOpenPast24Mths: 5,
		FieldMoSinOldRevTLOp:   40,
		FieldBCOpenToBuy:       3000,
		FieldMortAcc:           2,
		FieldTotalBCLimit:      9000,
		FieldAvgCurBal:         7000,
		FieldOpenRV24m:         1,
	}
}
