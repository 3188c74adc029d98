package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Application lifecycle status labels. Status is free text in the data set;
// these are the values the backend itself writes or branches on.
const (
	StatusPending       = "Pending"
	StatusPartDisbursed = "Part Disbursed"

	ApprovalApprovedBySB = "Approved by SB"
	ApprovalRejectedBySB = "Rejected by SB"
)

// Sentinel value in classification fields meaning "the real value lives in
// the paired Other* free-text field".
const OtherSentinel = "Other"

// PartDisbursement is one installment paid out against a sanction.
// Amount stays a string: legacy records carry both "100000" and "1,00,000".
type PartDisbursement struct {
	Date   FlexDate `json:"date"`
	Amount string   `json:"amount"`
}

// PartDisbursements is the ordered installment list, stored as jsonb.
type PartDisbursements []PartDisbursement

func (p *PartDisbursements) Scan(value interface{}) error { return scanJSON(value, p) }

func (p PartDisbursements) Value() (driver.Value, error) {
	if p == nil {
		return json.Marshal([]PartDisbursement{})
	}
	return json.Marshal(p)
}

// Application represents one loan-processing case.
type Application struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	Code               string `gorm:"column:code"                 json:"code"`
	OtherCode          string `gorm:"column:other_code"           json:"otherCode"`
	Name               string `gorm:"column:name;not null"        json:"name"`
	Mobile             string `gorm:"column:mobile;not null"      json:"mobile"`
	Email              string `gorm:"column:email"                json:"email"`
	Product            string `gorm:"column:product"              json:"product"`
	OtherProduct       string `gorm:"column:other_product"        json:"otherProduct"`
	Amount             string `gorm:"column:amount"               json:"amount"`
	Bank               string `gorm:"column:bank"                 json:"bank"`
	OtherBank          string `gorm:"column:other_bank"           json:"otherBank"`
	BankerName         string `gorm:"column:banker_name"          json:"bankerName"`
	Sales              string `gorm:"column:sales;index"          json:"sales"`
	Ref                string `gorm:"column:ref"                  json:"ref"`
	SourceChannel      string `gorm:"column:source_channel"       json:"sourceChannel"`
	OtherSourceChannel string `gorm:"column:other_source_channel" json:"otherSourceChannel"`
	Category           string `gorm:"column:category"             json:"category"`
	OtherCategory      string `gorm:"column:other_category"       json:"otherCategory"`
	PropertyType       string `gorm:"column:property_type"        json:"propertyType"`
	PropertyDetails    string `gorm:"column:property_details"     json:"propertyDetails"`

	Status         string `gorm:"column:status"          json:"status"`
	ApprovalStatus string `gorm:"column:approval_status" json:"approvalStatus"`

	// PD sub-workflow
	PDStatus string   `gorm:"column:pd_status" json:"pdStatus"`
	PDRemark string   `gorm:"column:pd_remark" json:"pdRemark"`
	PDDate   FlexDate `gorm:"column:pd_date"   json:"pdDate"`

	LoginDate     FlexDate `gorm:"column:login_date"     json:"loginDate"`
	SanctionDate  FlexDate `gorm:"column:sanction_date"  json:"sanctionDate"`
	DisbursedDate FlexDate `gorm:"column:disbursed_date" json:"disbursedDate"`

	SanctionAmount   string `gorm:"column:sanction_amount"   json:"sanctionAmount"`
	DisbursedAmount  string `gorm:"column:disbursed_amount"  json:"disbursedAmount"`
	LoanNumber       string `gorm:"column:loan_number"       json:"loanNumber"`
	InsuranceOption  string `gorm:"column:insurance_option"  json:"insuranceOption"`
	InsuranceAmount  string `gorm:"column:insurance_amount"  json:"insuranceAmount"`
	SubventionOption string `gorm:"column:subvention_option" json:"subventionOption"`
	SubventionAmount string `gorm:"column:subvention_amount" json:"subventionAmount"`
	ReloginReason    string `gorm:"column:relogin_reason"    json:"reloginReason"`

	Consulting       string `gorm:"column:consulting"         json:"consulting"`
	Payout           string `gorm:"column:payout"             json:"payout"`
	ExpenceAmount    string `gorm:"column:expence_amount"     json:"expenceAmount"`
	FeesRefundAmount string `gorm:"column:fees_refund_amount" json:"feesRefundAmount"`
	Remark           string `gorm:"column:remark"             json:"remark"`
	RejectedRemark   string `gorm:"column:rejected_remark"    json:"rejectedRemark"`
	WithdrawRemark   string `gorm:"column:withdraw_remark"    json:"withdrawRemark"`
	HoldRemark       string `gorm:"column:hold_remark"        json:"holdRemark"`

	PartDisbursed PartDisbursements `gorm:"column:part_disbursed;type:jsonb" json:"partDisbursed"`

	// free-form change trail written by the frontends; never exported
	AuditData datatypes.JSON `gorm:"column:audit_data;type:jsonb" json:"auditData"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName specifies the table name for Application
func (Application) TableName() string {
	return "applications"
}

// ImportantSnapshot captures the fields whose change on edit forces the
// case back to Pending so approval must be re-obtained. Compare a snapshot
// taken before and after applying a partial update.
func (a *Application) ImportantSnapshot() string {
	return strings.Join([]string{
		a.Consulting, a.Payout, a.ExpenceAmount, a.FeesRefundAmount, a.Remark,
	}, "\x00")
}

// Validate checks submission-time required fields.
func (a *Application) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(a.Mobile) == "" {
		return errors.New("mobile is required")
	}
	return nil
}
