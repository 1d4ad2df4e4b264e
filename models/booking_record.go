package models

import "time"

// BookingRecord is a copy of a confirmed booking kept for the contractor
// dashboard. The submission gateway owns the booking itself; this record
// is what the contractor sees in their history.
type BookingRecord struct {
	ID               string    `bson:"id" json:"id"`
	ContractorID     string    `bson:"contractorId" json:"contractorId"`
	ConfirmationCode string    `bson:"confirmationCode" json:"confirmationCode"`
	ServiceType      string    `bson:"serviceType" json:"serviceType"`
	ScheduledDate    string    `bson:"scheduledDate" json:"scheduledDate"`
	ScheduledTime    string    `bson:"scheduledTime" json:"scheduledTime"`
	CustomerName     string    `bson:"customerName" json:"customerName"`
	CustomerEmail    string    `bson:"customerEmail" json:"customerEmail"`
	CustomerPhone    string    `bson:"customerPhone,omitempty" json:"customerPhone,omitempty"`
	ServiceAddress   string    `bson:"serviceAddress,omitempty" json:"serviceAddress,omitempty"`
	Description      string    `bson:"description,omitempty" json:"description,omitempty"`
	ReferralSource   string    `bson:"referralSource,omitempty" json:"referralSource,omitempty"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
}
