package record

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/ormond/healthchain/foundation/validate"
)

// EntityType represents the kind of record being stored.
type EntityType string

// Set of entity types the hospital tracks.
const (
	TypePatient   EntityType = "patient"
	TypeDoctor    EntityType = "doctor"
	TypeInsurance EntityType = "insurance"
	TypePharmacy  EntityType = "pharmacy"
)

// EntityTypes lists every supported entity type in display order.
var EntityTypes = []EntityType{TypePatient, TypeDoctor, TypeInsurance, TypePharmacy}

// ParseEntityType converts a string into an EntityType.
func ParseEntityType(s string) (EntityType, error) {
	for _, et := range EntityTypes {
		if string(et) == s {
			return et, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidEntityType, s)
}

// =============================================================================

// NewEntry is what a data entry form submits. Name and the two extra fields
// take their meaning from the entity type.
type NewEntry struct {
	EntityType string `json:"entity_type" validate:"required,oneof=patient doctor insurance pharmacy"`
	ID         string `json:"id" validate:"required,max=64"`
	Name       string `json:"name" validate:"required,max=256"`
	Extra1     string `json:"extra1" validate:"required,max=256"`
	Extra2     string `json:"extra2" validate:"max=256"`
}

// Validate checks the entry is complete and well formed.
func (ne NewEntry) Validate() error {
	if err := validate.Check(ne); err != nil {
		return err
	}

	if ne.EntityType == string(TypeInsurance) && ne.Extra2 != "" {
		// ParseFloat accepts NaN and Inf which can't be rendered as JSON.
		amount, err := strconv.ParseFloat(ne.Extra2, 64)
		if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
			return validate.NewFieldsError("extra2", fmt.Errorf("%w: %q", ErrInvalidAmount, ne.Extra2))
		}
	}

	return nil
}

// Record is a stored entry of any entity type.
type Record struct {
	Type        EntityType `json:"entity_type"`
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Extra1      string     `json:"extra1"`
	Extra2      string     `json:"extra2"`
	DateCreated time.Time  `json:"date_created"`
}

// Describe returns the human readable summary that is recorded as the
// transaction data for this record.
func (r Record) Describe() string {
	switch r.Type {
	case TypePatient:
		return fmt.Sprintf("Added patient %s with diagnosis %s", r.Name, r.Extra1)
	case TypeDoctor:
		return fmt.Sprintf("Added doctor %s, specialty: %s", r.Name, r.Extra1)
	case TypeInsurance:
		return fmt.Sprintf("Added insurance claim for %s, amount: %s", r.Name, r.Extra2)
	case TypePharmacy:
		return fmt.Sprintf("Added pharmacy record for %s, medicine: %s", r.Name, r.Extra1)
	}

	return fmt.Sprintf("Added %s record %s", r.Type, r.ID)
}

// =============================================================================

// Patient is the patient view of a record.
type Patient struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Diagnosis string `json:"diagnosis"`
	DoctorID  string `json:"doctor_id,omitempty"`
}

// Doctor is the doctor view of a record.
type Doctor struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Specialty  string `json:"specialty"`
	HospitalID string `json:"hospital_id,omitempty"`
}

// InsuranceClaim is the insurance view of a record.
type InsuranceClaim struct {
	ID        string  `json:"id"`
	PatientID string  `json:"patient_id"`
	Company   string  `json:"company"`
	Amount    float64 `json:"amount"`
}

// PharmacyRecord is the pharmacy view of a record.
type PharmacyRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Medicine string `json:"medicine"`
	Dosage   string `json:"dosage,omitempty"`
}

// Records holds every stored record split by entity type.
type Records struct {
	Patients        []Patient        `json:"patients"`
	Doctors         []Doctor         `json:"doctors"`
	InsuranceClaims []InsuranceClaim `json:"insurance_claims"`
	PharmacyRecords []PharmacyRecord `json:"pharmacy_records"`
}

// add places the record in the list for its entity type.
func (rs *Records) add(r Record) {
	switch r.Type {
	case TypePatient:
		rs.Patients = append(rs.Patients, Patient{ID: r.ID, Name: r.Name, Diagnosis: r.Extra1, DoctorID: r.Extra2})

	case TypeDoctor:
		rs.Doctors = append(rs.Doctors, Doctor{ID: r.ID, Name: r.Name, Specialty: r.Extra1, HospitalID: r.Extra2})

	case TypeInsurance:

		// Validate guarantees the amount parses. An empty amount is zero, and
		// so is any NaN or Inf stored before Validate rejected them.
		amount, _ := strconv.ParseFloat(r.Extra2, 64)
		if math.IsNaN(amount) || math.IsInf(amount, 0) {
			amount = 0
		}
		rs.InsuranceClaims = append(rs.InsuranceClaims, InsuranceClaim{ID: r.ID, PatientID: r.Name, Company: r.Extra1, Amount: amount})

	case TypePharmacy:
		rs.PharmacyRecords = append(rs.PharmacyRecords, PharmacyRecord{ID: r.ID, Name: r.Name, Medicine: r.Extra1, Dosage: r.Extra2})
	}
}

// Counts holds the number of records per entity type.
type Counts struct {
	Patients        int `json:"patients"`
	Doctors         int `json:"doctors"`
	InsuranceClaims int `json:"insurance_claims"`
	PharmacyRecords int `json:"pharmacy_records"`
}
