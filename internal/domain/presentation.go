package domain

// StatusPresentation is how the calendar and reports show a status.
type StatusPresentation struct {
	Status AppointmentStatus `json:"status"`
	Label  string            `json:"label"`
	Color  string            `json:"color"`
}

var statusPresentations = []StatusPresentation{
	{Status: AppointmentStatusScheduled, Label: "Agendada", Color: "#3b82f6"},
	{Status: AppointmentStatusConfirmedPhone, Label: "Confirmada", Color: "#6366f1"},
	{Status: AppointmentStatusPaidCheckedIn, Label: "Pagada / En sala", Color: "#10b981"},
	{Status: AppointmentStatusResidentIntake, Label: "Evaluación de residente", Color: "#14b8a6"},
	{Status: AppointmentStatusInProgress, Label: "En consulta", Color: "#f59e0b"},
	{Status: AppointmentStatusCompleted, Label: "Finalizada", Color: "#6b7280"},
	{Status: AppointmentStatusCancelled, Label: "Cancelada", Color: "#ef4444"},
	{Status: AppointmentStatusNoShow, Label: "No se presentó", Color: "#9ca3af"},
}

var consultationLabels = map[ConsultationStatus]string{
	ConsultationStatusWaiting:    "En espera",
	ConsultationStatusInProgress: "En consulta",
	ConsultationStatusFinished:   "Finalizada",
	ConsultationStatusDelivered:  "Entregada",
}

func StatusPresentations() []StatusPresentation {
	out := make([]StatusPresentation, len(statusPresentations))
	copy(out, statusPresentations)
	return out
}

func PresentStatus(status AppointmentStatus) StatusPresentation {
	for _, p := range statusPresentations {
		if p.Status == status {
			return p
		}
	}
	return StatusPresentation{Status: status, Label: string(status), Color: "#9ca3af"}
}

func ConsultationStatusLabel(status ConsultationStatus) string {
	if label, ok := consultationLabels[status]; ok {
		return label
	}
	return string(status)
}
