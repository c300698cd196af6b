package models

// BookingStatus defines the operational status values a booking moves through.
// The ordered lifecycle and the stage mapping live in app/scheduling.
type BookingStatus string

const (
	BookingUnconfirmed BookingStatus = "unconfirmed"
	BookingConfirmed   BookingStatus = "confirmed"
	BookingBriefing    BookingStatus = "briefing"
	BookingCheckout    BookingStatus = "checkout"
	BookingFlying      BookingStatus = "flying"
	BookingCheckin     BookingStatus = "checkin"
	BookingComplete    BookingStatus = "complete"
	BookingDebrief     BookingStatus = "debrief"
	BookingCancelled   BookingStatus = "cancelled"
)

// FlightType defines the kind of flight a booking represents.
type FlightType string

const (
	FlightDual  FlightType = "dual"
	FlightSolo  FlightType = "solo"
	FlightHire  FlightType = "hire"
	FlightTrial FlightType = "trial"
)

// AircraftStatus defines the serviceability of an aircraft.
type AircraftStatus string

const (
	AircraftOnline      AircraftStatus = "online"
	AircraftMaintenance AircraftStatus = "maintenance"
	AircraftRetired     AircraftStatus = "retired"
)

// MembershipStatus defines the standing of a member.
type MembershipStatus string

const (
	MembershipActive    MembershipStatus = "active"
	MembershipSuspended MembershipStatus = "suspended"
	MembershipExpired   MembershipStatus = "expired"
)

// InvoiceStatus defines the billing status of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "draft"
	InvoiceIssued  InvoiceStatus = "issued"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
	InvoiceVoided  InvoiceStatus = "voided"
)

// EquipmentStatus defines whether a piece of equipment can be issued.
type EquipmentStatus string

const (
	EquipmentAvailable EquipmentStatus = "available"
	EquipmentIssued    EquipmentStatus = "issued"
	EquipmentRetired   EquipmentStatus = "retired"
	EquipmentLost      EquipmentStatus = "lost"
)
