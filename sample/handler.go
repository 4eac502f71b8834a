// Package handlers is the demo application the analyzer is pointed at in
// development. It declares a handful of components over a small clinical
// domain and serves them through rex handlers.
package handlers

import (
	"fmt"

	"github.com/abiiranathan/rex"
)

// Patient represents a patient
type Patient struct {
	Name string // Patient full name
	ID   uint   // Patient record ID
}

// Doctor represents a doctor
type Doctor struct {
	DisplayName string
	ID          uint
}

// Visit represents a patient visit
type Visit struct {
	ID      uint
	Patient Patient
	Doctor  Doctor
	Notes   []string
}

// Drug represents a drug
type Drug struct {
	Name     string // Drug name
	Quantity int
	Price    float64
}

// Prescription represents a prescription
type Prescription struct {
	DrugName string
	Quantity int
	Dosage   string // Dosage
	Drug     Drug   // The drug object
}

// Handler holds service dependencies
type Handler struct{}

// RenderTreatmentChart renders the treatment chart page.
func (h *Handler) RenderTreatmentChart(inpatient bool) rex.HandlerFunc {
	return func(c *rex.Context) error {
		visitID := c.ParamUint("visit_id")
		visit := Visit{ID: visitID}

		title := "Inpatient Treatment Chart"
		if !inpatient {
			title = "OPD Progressive Treatment Chart"
		}

		chart := TreatmentChart{
			Title: title,
			Visit: visit,
		}
		c.Set("chart", chart)

		return c.Render("views/treatment-chart.html", rex.Map{
			"Title":      title,
			"chart":      chart,
			"doctor":     visit.Doctor.DisplayName,
			"patientURL": fmt.Sprintf("/patients/%d", visit.Patient.ID),
		})
	}
}

// RenderVisit renders a single visit card.
func (h *Handler) RenderVisit() rex.HandlerFunc {
	return func(c *rex.Context) error {
		visitID := c.ParamUint("visit_id")
		card := VisitCard{Visit: Visit{ID: visitID}}

		return c.Render("views/visit.html", rex.Map{
			"card": card,
		})
	}
}
