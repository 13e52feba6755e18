package constants

const (
	ROLE_ADMIN  = "ADMIN"
	ROLE_STAFF  = "STAFF"
	ROLE_CLIENT = "CLIENT"
)

const (
	RESERVATION_PENDING   = "PENDING"
	RESERVATION_CONFIRMED = "CONFIRMED"
	RESERVATION_CANCELLED = "CANCELLED"
	RESERVATION_COMPLETED = "COMPLETED"
)

const (
	ERROR_INPUT                = "Datos de entrada no válidos"
	ERROR_INTERNAL_ERROR       = "Error interno del servidor"
	ERROR_CREATE               = "No se pudo crear el registro"
	ERROR_PARSE_DATA_TO_LOCALS = "No se pudieron leer los datos de la petición"
	DATA_INPUT_IS_NOT_NUMBER   = "El identificador debe ser numérico"

	MISSING_LOGIN_INPUT   = "Usuario y contraseña son obligatorios"
	INVALID_USERNAME      = "El usuario no existe"
	INVALID_PASSWORD      = "Contraseña incorrecta"
	ACCOUNT_NOT_ACTIVE    = "La cuenta está desactivada"
	CAN_NOT_HASH_PASSWORD = "No se pudo procesar la contraseña"

	NOT_STAFF             = "Se requiere una cuenta de personal"
	VENUE_NOT_FOUND       = "Espacio no encontrado"
	AMENITY_NOT_FOUND     = "Instalación no encontrada"
	RESERVATION_NOT_FOUND = "Reserva no encontrada"
)
