package i18n

var messagesES = map[string]string{
	SplashTitle:   "Taskdeck",
	HomeTitle:     "Tareas",
	HomeLoading:   "Cargando...",
	HomeEmpty:     "Aún no hay tareas. Pulsa a para crear una.",
	TaskCreate:    "Crear tarea",
	TaskRemove:    "Eliminar",
	TaskSubmit:    "Guardar",
	TaskCreated:   "Creada el %s",
	TaskLow:       "Baja",
	TaskMedium:    "Media",
	TaskHigh:      "Alta",
	RemainingNone: "Sin fecha límite",
	RemainingLate: "Vencida",
	RemainingDays: "Quedan %dd %dh",
	RemainingHrs:  "Quedan %dh",
	RemainingMins: "Quedan %dm",
	DateLayout:    "02/01/2006",
	ErrFetch:      "No se pudieron cargar las tareas",
	ErrSave:       "No se pudo guardar la tarea",
	ErrDelete:     "No se pudo eliminar la tarea",
	HelpCreate:    "crear",
	HelpExpand:    "abrir/guardar",
	HelpCollapse:  "cerrar",
	HelpCheck:     "marcar",
	HelpRemove:    "eliminar",
	HelpNavigate:  "mover",
	HelpQuit:      "salir",
	HelpToggle:    "ayuda",
	HelpTheme:     "tema",
	StatusTheme:   "Tema: %s",
}
