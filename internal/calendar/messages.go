package calendar

// Messages holds the user-facing texts the machine emits as notifications.
type Messages struct {
	LoadErrorTitle   string
	LoadErrorMessage string

	RequiredTitle     string
	PetNameRequired   string
	OwnerNameRequired string
	ServiceRequired   string
	DateRequired      string
	TimeRequired      string

	CreatedTitle     string
	CreatedMessage   string
	UpdatedTitle     string
	UpdatedMessage   string
	SaveErrorTitle   string
	SaveErrorMessage string

	DeleteConfirm      string
	DeletedTitle       string
	DeletedMessage     string
	DeleteErrorTitle   string
	DeleteErrorMessage string

	StatusUpdatedTitle   string
	StatusUpdatedMessage string
	StatusErrorTitle     string
	StatusErrorMessage   string

	SearchErrorTitle   string
	SearchErrorMessage string
}

var Spanish = Messages{
	LoadErrorTitle:   "Error al cargar citas",
	LoadErrorMessage: "No se pudieron cargar las citas. Verifique la conexión con el servidor.",

	RequiredTitle:     "Campos requeridos",
	PetNameRequired:   "El nombre de la mascota es obligatorio.",
	OwnerNameRequired: "El nombre del dueño es obligatorio.",
	ServiceRequired:   "Debe seleccionar un servicio.",
	DateRequired:      "La fecha es obligatoria.",
	TimeRequired:      "La hora es obligatoria.",

	CreatedTitle:     "¡Cita creada!",
	CreatedMessage:   "La nueva cita se ha programado correctamente.",
	UpdatedTitle:     "¡Cita actualizada!",
	UpdatedMessage:   "La cita se ha actualizado correctamente.",
	SaveErrorTitle:   "Error al guardar",
	SaveErrorMessage: "No se pudo guardar la cita. Intente nuevamente.",

	DeleteConfirm:      "¿Está seguro de que desea eliminar esta cita?",
	DeletedTitle:       "Cita eliminada",
	DeletedMessage:     "La cita se ha eliminado correctamente.",
	DeleteErrorTitle:   "Error al eliminar",
	DeleteErrorMessage: "No se pudo eliminar la cita. Intente nuevamente.",

	StatusUpdatedTitle:   "Estado actualizado",
	StatusUpdatedMessage: "El estado de la cita se ha actualizado.",
	StatusErrorTitle:     "Error al actualizar",
	StatusErrorMessage:   "No se pudo actualizar el estado de la cita.",

	SearchErrorTitle:   "Error en la búsqueda",
	SearchErrorMessage: "No se pudo buscar citas por dueño.",
}

var English = Messages{
	LoadErrorTitle:   "Could not load appointments",
	LoadErrorMessage: "Appointments could not be loaded. Check the connection to the server.",

	RequiredTitle:     "Required fields",
	PetNameRequired:   "Pet name is required.",
	OwnerNameRequired: "Owner name is required.",
	ServiceRequired:   "A service must be selected.",
	DateRequired:      "Date is required.",
	TimeRequired:      "Time is required.",

	CreatedTitle:     "Appointment created",
	CreatedMessage:   "The new appointment has been scheduled.",
	UpdatedTitle:     "Appointment updated",
	UpdatedMessage:   "The appointment has been updated.",
	SaveErrorTitle:   "Could not save",
	SaveErrorMessage: "The appointment could not be saved. Try again.",

	DeleteConfirm:      "Are you sure you want to delete this appointment?",
	DeletedTitle:       "Appointment deleted",
	DeletedMessage:     "The appointment has been deleted.",
	DeleteErrorTitle:   "Could not delete",
	DeleteErrorMessage: "The appointment could not be deleted. Try again.",

	StatusUpdatedTitle:   "Status updated",
	StatusUpdatedMessage: "The appointment status has been updated.",
	StatusErrorTitle:     "Could not update",
	StatusErrorMessage:   "The appointment status could not be updated.",

	SearchErrorTitle:   "Search failed",
	SearchErrorMessage: "Appointments could not be searched by owner.",
}

// MessagesFor returns the catalogue for locale ("es" or "en"), defaulting
// to English.
func MessagesFor(locale string) Messages {
	if locale == "es" {
		return Spanish
	}
	return English
}
