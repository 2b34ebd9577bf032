package version

// Version es la versión actual de MateIntake
// Esta versión debe actualizarse en cada release
const Version = "0.3.0"

// FullVersion retorna la versión con el prefijo v
func FullVersion() string {
	return "v" + Version
}
