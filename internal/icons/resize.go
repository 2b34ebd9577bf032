// Package icons convierte el PNG subido en los contenedores de íconos
// nativos: ICO multi-tamaño para Windows e ICNS multi-resolución para macOS.
package icons

import (
	"image"

	"golang.org/x/image/draw"
)

// nearestThreshold es el lado máximo para el cual se usa vecino más cercano:
// en tamaños chicos conserva la nitidez de los bordes del pixel art.
const nearestThreshold = 32

// resize escala la imagen a un cuadrado de size píxeles. Tamaños ≤ 32 usan
// vecino más cercano, el resto un filtro de remuestreo de alta calidad.
func resize(src image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))

	if size <= nearestThreshold {
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	}

	return dst
}
