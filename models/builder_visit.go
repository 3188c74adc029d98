package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Per-level approval states.
const (
	LevelPending  = "Pending"
	LevelApproved = "Approved"
	LevelRejected = "Rejected"
)

// Legacy single-field projection of the two-level approval object. Older
// frontends still read this field, so it is kept in sync on every
// transition.
const (
	StatusLevel1Approved = "Level1Approved"
	StatusLevel2Approved = "Level2Approved"
	StatusLevel1Rejected = "Level1Rejected"
	StatusLevel2Rejected = "Level2Rejected"
)

// ApprovalLevel is one reviewer slot in the two-level chain.
type ApprovalLevel struct {
	Status  string     `json:"status"`
	By      string     `json:"by"`
	At      *time.Time `json:"at"`
	Comment string     `json:"comment"`
}

// Approval holds both review levels, stored as a single jsonb column.
type Approval struct {
	Level1 ApprovalLevel `json:"level1"`
	Level2 ApprovalLevel `json:"level2"`
}

func (a *Approval) Scan(value interface{}) error { return scanJSON(value, a) }

func (a Approval) Value() (driver.Value, error) { return json.Marshal(a) }

// NewApproval returns the both-levels-Pending starting state.
func NewApproval() Approval {
	return Approval{
		Level1: ApprovalLevel{Status: LevelPending},
		Level2: ApprovalLevel{Status: LevelPending},
	}
}

// PropertySize is one unit configuration offered at a project. All fields
// are free-text strings; the legacy records mix "1,200", "1200" and "" in
// every numeric column.
type PropertySize struct {
	Size              string `json:"size"`
	Floor             string `json:"floor"`
	Sqft              string `json:"sqft"`
	BasicRate         string `json:"basicRate"`
	SellableAmount    string `json:"sellableAmount"`
	RegularPrice      string `json:"regularPrice"`
	DownPayment       string `json:"downPayment"`
	Maintenance       string `json:"maintenance"`
	AecAuda           string `json:"aecAuda"`
	DevelopmentCharge string `json:"developmentCharge"`
	ParkingCharge     string `json:"parkingCharge"`
	LegalFees         string `json:"legalFees"`
	GstAmount         string `json:"gstAmount"`
	OtherCharges      string `json:"otherCharges"`
}

// PropertySizes is the per-visit unit list, stored as jsonb.
type PropertySizes []PropertySize

func (p *PropertySizes) Scan(value interface{}) error { return scanJSON(value, p) }

func (p PropertySizes) Value() (driver.Value, error) {
	if p == nil {
		return json.Marshal([]PropertySize{})
	}
	return json.Marshal(p)
}

// Executive is one accompanying sales executive.
type Executive struct {
	Name   string `json:"name"`
	Number string `json:"number"`
}

// Executives is the accompanying-staff list, stored as jsonb.
type Executives []Executive

func (e *Executives) Scan(value interface{}) error { return scanJSON(value, e) }

func (e Executives) Value() (driver.Value, error) {
	if e == nil {
		return json.Marshal([]Executive{})
	}
	return json.Marshal(e)
}

// Display renders the list as "Name (number), Name (number)" for report
// cells.
func (e Executives) Display() string {
	parts := make([]string, 0, len(e))
	for _, ex := range e {
		parts = append(parts, fmt.Sprintf("%s (%s)", ex.Name, ex.Number))
	}
	return strings.Join(parts, ", ")
}

var mobileRe = regexp.MustCompile(`^\d{10}$`)

// BuilderVisit records one site visit to a builder project.
type BuilderVisit struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	BuilderName   string   `gorm:"column:builder_name;not null" json:"builderName"`
	BuilderNumber string   `gorm:"column:builder_number"        json:"builderNumber"`
	GroupName     string   `gorm:"column:group_name"            json:"groupName"`
	ProjectName   string   `gorm:"column:project_name;not null" json:"projectName"`
	Location      string   `gorm:"column:location;not null"     json:"location"`
	DateOfVisit   FlexDate `gorm:"column:date_of_visit"         json:"dateOfVisit"`
	BusinessType  string   `gorm:"column:business_type"         json:"businessType"`

	OfficePersonDetails string     `gorm:"column:office_person_details" json:"officePersonDetails"`
	OfficePersonNumber  string     `gorm:"column:office_person_number"  json:"officePersonNumber"`
	Executives          Executives `gorm:"column:executives;type:jsonb" json:"executives"`

	LoanAccountNumber   string `gorm:"column:loan_account_number"   json:"loanAccountNumber"`
	SaiFakiraManager    string `gorm:"column:sai_fakira_manager"    json:"saiFakiraManager"`
	StageOfConstruction string `gorm:"column:stage_of_construction" json:"stageOfConstruction"`
	DevelopmentType     string `gorm:"column:development_type"      json:"developmentType"`
	AreaType            string `gorm:"column:area_type"             json:"areaType"`
	TotalUnitsBlocks    string `gorm:"column:total_units_blocks"    json:"totalUnitsBlocks"`
	TotalBlocks         string `gorm:"column:total_blocks"          json:"totalBlocks"`

	PropertySizes PropertySizes `gorm:"column:property_sizes;type:jsonb" json:"propertySizes"`

	ExpectedCompletionDate FlexDate `gorm:"column:expected_completion_date" json:"expectedCompletionDate"`
	Negotiable             string   `gorm:"column:negotiable"               json:"negotiable"`
	FinancingRequirements  string   `gorm:"column:financing_requirements"   json:"financingRequirements"`
	ResidentType           string   `gorm:"column:resident_type"            json:"residentType"`
	NearbyProjects         string   `gorm:"column:nearby_projects"          json:"nearbyProjects"`
	SurroundingCommunity   string   `gorm:"column:surrounding_community"    json:"surroundingCommunity"`
	EnquiryType            string   `gorm:"column:enquiry_type"             json:"enquiryType"`
	UnitsForSale           string   `gorm:"column:units_for_sale"           json:"unitsForSale"`
	TimeLimitMonths        string   `gorm:"column:time_limit_months"        json:"timeLimitMonths"`
	Remark                 string   `gorm:"column:remark"                   json:"remark"`
	Payout                 string   `gorm:"column:payout"                   json:"payout"`

	Usps              StringArray `gorm:"column:usps;type:jsonb" json:"usps"`
	TotalAmenities    string      `gorm:"column:total_amenities" json:"totalAmenities"`
	AllotedCarParking string      `gorm:"column:alloted_car_parking" json:"allotedCarParking"`

	ClearFloorHeight        string `gorm:"column:clear_floor_height"         json:"clearFloorHeight"`
	ClearFloorHeightRetail  string `gorm:"column:clear_floor_height_retail"  json:"clearFloorHeightRetail"`
	ClearFloorHeightFlats   string `gorm:"column:clear_floor_height_flats"   json:"clearFloorHeightFlats"`
	ClearFloorHeightOffices string `gorm:"column:clear_floor_height_offices" json:"clearFloorHeightOffices"`

	Approval       Approval `gorm:"column:approval;type:jsonb" json:"approval"`
	ApprovalStatus string   `gorm:"column:approval_status"     json:"approvalStatus"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName specifies the table name for BuilderVisit
func (BuilderVisit) TableName() string {
	return "builder_visits"
}

// Validate checks submission-time required fields.
func (bv *BuilderVisit) Validate() error {
	if strings.TrimSpace(bv.BuilderName) == "" {
		return errors.New("builderName is required")
	}
	if strings.TrimSpace(bv.ProjectName) == "" {
		return errors.New("projectName is required")
	}
	if strings.TrimSpace(bv.Location) == "" {
		return errors.New("location is required")
	}
	if len(bv.PropertySizes) == 0 {
		return errors.New("at least one property size is required")
	}
	for i, ex := range bv.Executives {
		if !mobileRe.MatchString(ex.Number) {
			return fmt.Errorf("executive %d: number must be 10 digits", i+1)
		}
	}
	return nil
}
