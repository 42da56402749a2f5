package entity

type SettingStatus string

const (
	SettingStatusActive   SettingStatus = "active"
	SettingStatusInactive SettingStatus = "inactive"
)

// Global program configuration properties.
const (
	PropTransactionRate       = "transaction_rate"
	PropMerchantLiabilityRate = "merchant_liability_rate"
)

type Setting struct {
	BaseSimple
	Name   string        `db:"name"`
	Value  float64       `db:"value"`
	Status SettingStatus `db:"status"`
}
