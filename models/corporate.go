package models

import "time"

// CorporateAccessCode grants a bounded number of fully employer-funded sessions.
// Issued externally; this core only validates and consumes it.
type CorporateAccessCode struct {
	Code              string    `bson:"code" json:"code"`
	CompanyID         string    `bson:"company_id" json:"company_id"`
	EmployeeID        string    `bson:"employee_id" json:"employee_id"`
	RemainingSessions int       `bson:"remaining_sessions" json:"remaining_sessions"` // Decremented on each confirmed corporate booking; never negative
	Expiry            time.Time `bson:"expiry" json:"expiry"`
}

// CorporateCodeLength is the fixed length of an access code.
const CorporateCodeLength = 12
