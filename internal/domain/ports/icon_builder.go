package ports

import "image"

// IconBuilder convierte una imagen PNG en los contenedores de íconos
// nativos de cada plataforma.
type IconBuilder interface {
	// BuildICO escribe un contenedor ICO multi-resolución en outputPath.
	BuildICO(img image.Image, sizes []int, outputPath string) error
	// BuildICNS escribe un contenedor ICNS con el set fijo de resoluciones.
	BuildICNS(img image.Image, outputPath string) error
}
