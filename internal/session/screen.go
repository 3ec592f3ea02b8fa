package session

// Screen es el conjunto cerrado de pantallas del cliente.
// El método screen() no exportado sella la interfaz a este paquete.
type Screen interface {
	Name() string
	screen()
}

type LoginScreen struct{}
type HomeScreen struct{}
type BookingScreen struct{ ServiceID string }
type MyAppointmentsScreen struct{}
type ProfileScreen struct{}
type PetRegistrationScreen struct{ PetID string } // vacío = alta nueva
type AdminDashboardScreen struct{}
type AdminAgendaScreen struct{}
type AdminServicesScreen struct{}
type AdminSettingsScreen struct{}

func (LoginScreen) Name() string           { return "LOGIN" }
func (HomeScreen) Name() string            { return "HOME" }
func (BookingScreen) Name() string         { return "BOOKING" }
func (MyAppointmentsScreen) Name() string  { return "MY_APPOINTMENTS" }
func (ProfileScreen) Name() string         { return "PROFILE" }
func (PetRegistrationScreen) Name() string { return "PET_REGISTRATION" }
func (AdminDashboardScreen) Name() string  { return "ADMIN_DASHBOARD" }
func (AdminAgendaScreen) Name() string     { return "ADMIN_AGENDA" }
func (AdminServicesScreen) Name() string   { return "ADMIN_SERVICES" }
func (AdminSettingsScreen) Name() string   { return "ADMIN_SETTINGS" }

func (LoginScreen) screen()           {}
func (HomeScreen) screen()            {}
func (BookingScreen) screen()         {}
func (MyAppointmentsScreen) screen()  {}
func (ProfileScreen) screen()         {}
func (PetRegistrationScreen) screen() {}
func (AdminDashboardScreen) screen()  {}
func (AdminAgendaScreen) screen()     {}
func (AdminServicesScreen) screen()   {}
func (AdminSettingsScreen) screen()   {}

// Landing es la pantalla inicial tras el sign-in (o LOGIN sin sesión).
func Landing(s *Session) Screen {
	if s == nil {
		return LoginScreen{}
	}
	if s.IsAdmin() {
		return AdminDashboardScreen{}
	}
	return HomeScreen{}
}

// Allowed indica si el rol puede abrir la pantalla.
func Allowed(role Role, sc Screen) bool {
	switch sc.(type) {
	case LoginScreen:
		return true
	case HomeScreen, BookingScreen, MyAppointmentsScreen, ProfileScreen, PetRegistrationScreen:
		return role == RoleClient || role == RoleAdmin
	case AdminDashboardScreen, AdminAgendaScreen, AdminServicesScreen, AdminSettingsScreen:
		return role == RoleAdmin
	default:
		return false
	}
}

// Payload devuelve el dato asociado a la pantalla (servicio o mascota), si lo hay.
func Payload(sc Screen) map[string]string {
	switch v := sc.(type) {
	case BookingScreen:
		if v.ServiceID != "" {
			return map[string]string{"service_id": v.ServiceID}
		}
	case PetRegistrationScreen:
		if v.PetID != "" {
			return map[string]string{"pet_id": v.PetID}
		}
	}
	return nil
}
