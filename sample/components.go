package handlers

import "github.com/abiiranathan/go-component-lsp/component"

// PatientBadge shows a patient's name and record number inline.
type PatientBadge struct {
	Patient  Patient
	Compact  bool
	RecordNo string
}

var patientBadge = component.Define(component.Definition{
	Host: PatientBadge{},
	Template: `<span class="badge" [title]="Patient.Name">
  {{ Patient.Name }} <small>#{{ RecordNo }}</small>
</span>`,
})

// VisitCard summarizes one visit: patient, attending doctor, and notes.
type VisitCard struct {
	Visit     Visit
	Highlight bool
}

var visitCard = component.Define(component.Definition{
	Host: VisitCard{},
	Template: `<div class="card" [class]="Highlight">
  <h3>{{ Visit.Patient.Name }}</h3>
  <p>Seen by {{ Visit.Doctor.DisplayName }}</p>
  <ul>
    <li *for="let note of Visit.Notes">{{ note }}</li>
  </ul>
</div>`,
})

// TreatmentChart is the full prescription table for a visit. Its markup
// lives next to this file.
type TreatmentChart struct {
	Title         string
	Visit         Visit
	Prescriptions []Prescription
}

var treatmentChart = component.Define(component.Definition{
	Host:        TreatmentChart{},
	TemplateURL: "./templates/treatment-chart.html",
})
