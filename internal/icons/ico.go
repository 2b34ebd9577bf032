package icons

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/Tomas-vilte/MateIntake/internal/domain/ports"
)

var _ ports.IconBuilder = (*Builder)(nil)

// DefaultICOSizes son las resoluciones estándar que Windows espera en un
// contenedor ICO.
var DefaultICOSizes = []int{16, 24, 32, 48, 64, 128, 256}

const (
	icoHeaderSize = 6
	icoEntrySize  = 16
)

type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// BuildICO escribe un contenedor ICO con una entrada PNG por cada tamaño
// pedido, en una sola pasada. El remuestreo sigue la regla por tamaño de
// resize.
func (b *Builder) BuildICO(img image.Image, sizes []int, outputPath string) error {
	if len(sizes) == 0 {
		sizes = DefaultICOSizes
	}

	encoded := make([][]byte, 0, len(sizes))
	for _, size := range sizes {
		var buf bytes.Buffer
		if err := png.Encode(&buf, resize(img, size)); err != nil {
			return fmt.Errorf("error al codificar el bitmap de %dpx: %w", size, err)
		}
		encoded = append(encoded, buf.Bytes())
	}

	var out bytes.Buffer

	// ICONDIR: reservado, tipo 1 (ícono), cantidad de entradas.
	header := [icoHeaderSize]byte{}
	binary.LittleEndian.PutUint16(header[2:4], 1)
	binary.LittleEndian.PutUint16(header[4:6], uint16(len(sizes)))
	out.Write(header[:])

	offset := uint32(icoHeaderSize + icoEntrySize*len(sizes))
	for i, size := range sizes {
		entry := [icoEntrySize]byte{}
		// 256px se codifica como 0 en los bytes de ancho/alto.
		entry[0] = byte(size % 256)
		entry[1] = byte(size % 256)
		binary.LittleEndian.PutUint16(entry[4:6], 1)  // planos de color
		binary.LittleEndian.PutUint16(entry[6:8], 32) // bits por píxel
		binary.LittleEndian.PutUint32(entry[8:12], uint32(len(encoded[i])))
		binary.LittleEndian.PutUint32(entry[12:16], offset)
		out.Write(entry[:])
		offset += uint32(len(encoded[i]))
	}

	for _, data := range encoded {
		out.Write(data)
	}

	if err := os.WriteFile(outputPath, out.Bytes(), 0644); err != nil {
		return fmt.Errorf("error al escribir %s: %w", outputPath, err)
	}
	return nil
}
