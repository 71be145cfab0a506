package notification

const (
	subjectLeadAssigned        = "Novo lead qualificado para você"
	subjectAppointmentBooked   = "Agendamento confirmado"
	subjectAppointmentReminder = "Lembrete: reunião amanhã"
)
