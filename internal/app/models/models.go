package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent    RoleType = "STUDENT"
	RoleWarden     RoleType = "WARDEN"
	RoleSuperAdmin RoleType = "SUPER_ADMIN"
)

// RoomStatus defines the persisted room status
type RoomStatus string

const (
	RoomStatusVacant           RoomStatus = "Vacant"
	RoomStatusOccupied         RoomStatus = "Occupied"
	RoomStatusUnderMaintenance RoomStatus = "Under Maintenance"
)

// AllotmentStatus defines the room allotment status
type AllotmentStatus string

const (
	AllotmentStatusActive  AllotmentStatus = "Active"
	AllotmentStatusVacated AllotmentStatus = "Vacated"
)

// ApplicationStatus defines the allotment application lifecycle status
type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusApproved  ApplicationStatus = "approved"
	ApplicationStatusAllocated ApplicationStatus = "allocated"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
)

// PerformanceType identifies which academic metric an application carries.
// First-year students apply with their KEAM entrance rank, seniors with CGPA.
type PerformanceType string

const (
	PerformanceTypeKeamRank PerformanceType = "keam_rank"
	PerformanceTypeCGPA     PerformanceType = "cgpa"
)

// MaintenanceStatus defines the maintenance request lifecycle
type MaintenanceStatus string

const (
	MaintenanceStatusPending    MaintenanceStatus = "pending"
	MaintenanceStatusInProgress MaintenanceStatus = "in_progress"
	MaintenanceStatusResolved   MaintenanceStatus = "resolved"
)

// FeeStatus defines whether a fee record has been settled
type FeeStatus string

const (
	FeeStatusUnpaid FeeStatus = "unpaid"
	FeeStatusPaid   FeeStatus = "paid"
)
