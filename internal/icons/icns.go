package icons

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"os"
)

// icnsEntry asocia un type-tag del formato ICNS con su resolución.
type icnsEntry struct {
	tag  string
	size int
}

// icnsEntries es el set fijo y ordenado de resoluciones del contenedor,
// de 16 a 1024 duplicando en cada paso.
var icnsEntries = []icnsEntry{
	{"icp4", 16},
	{"icp5", 32},
	{"icp6", 64},
	{"ic07", 128},
	{"ic08", 256},
	{"ic09", 512},
	{"ic10", 1024},
}

// BuildICNS escribe un contenedor ICNS mínimo: cada resolución se codifica
// como un PNG independiente y se serializa como un bloque con prefijo de
// longitud (tag ASCII de 4 bytes + uint32 big-endian igual a 8 + los bytes
// codificados). El archivo entero lleva un header de 8 bytes: el tag "icns"
// y un uint32 big-endian igual a 8 + el total de bytes de bloques.
func (b *Builder) BuildICNS(img image.Image, outputPath string) error {
	var blocks bytes.Buffer

	for _, entry := range icnsEntries {
		var encoded bytes.Buffer
		if err := png.Encode(&encoded, resize(img, entry.size)); err != nil {
			return fmt.Errorf("error al codificar el bitmap %s de %dpx: %w", entry.tag, entry.size, err)
		}

		blocks.WriteString(entry.tag)
		var length [4]byte
		binary.BigEndian.PutUint32(length[:], uint32(8+encoded.Len()))
		blocks.Write(length[:])
		blocks.Write(encoded.Bytes())
	}

	var out bytes.Buffer
	out.WriteString("icns")
	var total [4]byte
	binary.BigEndian.PutUint32(total[:], uint32(8+blocks.Len()))
	out.Write(total[:])
	out.Write(blocks.Bytes())

	if err := os.WriteFile(outputPath, out.Bytes(), 0644); err != nil {
		return fmt.Errorf("error al escribir %s: %w", outputPath, err)
	}
	return nil
}
