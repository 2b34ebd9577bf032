// Package construct parchea el archivo construct.yaml del repositorio
// plantilla: agrega la tabla extra_files, ajusta las claves de imágenes y
// preserva las claves repetidas (post_install, pre_uninstall) que un parser
// de mappings colapsaría.
package construct

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/Tomas-vilte/MateIntake/internal/domain/models"
	"gopkg.in/yaml.v3"
)

// FileName es la ruta fija del archivo de configuración en la raíz del repo.
const FileName = "construct.yaml"

// DuplicateKeys son las claves top-level que legítimamente se repiten en el
// documento original y no son representables como un mapping uno-a-uno.
var DuplicateKeys = []string{"post_install", "pre_uninstall"}

// ImageKeys son las claves opcionales de imágenes del instalador. Una clave
// sin imagen provista nunca debe emitirse con valor nulo o vacío.
var ImageKeys = []string{"welcome_image", "header_image", "icon_image"}

// Document es un construct.yaml parseado, junto con los bloques de claves
// repetidas capturados del texto original antes del parseo.
type Document struct {
	root       *yaml.Node
	duplicates map[string][]string
}

// CaptureDuplicateBlocks retorna las líneas completas del texto original
// (con su indentación) cuyo contenido recortado empieza con "<key>:".
// Se usa antes de parsear, porque el parseo colapsa las claves repetidas.
func CaptureDuplicateBlocks(text, key string) []string {
	var captured []string
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), key+":") {
			captured = append(captured, line)
		}
	}
	return captured
}

// Parse carga el documento y lo normaliza: un texto vacío produce un mapping
// vacío, y las claves repetidas quedan colapsadas a su primera aparición
// (las originales ya fueron capturadas para el re-splice).
func Parse(text string) (*Document, error) {
	duplicates := make(map[string][]string)
	for _, key := range DuplicateKeys {
		if lines := CaptureDuplicateBlocks(text, key); len(lines) > 0 {
			duplicates[key] = lines
		}
	}

	doc := &Document{
		root:       &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"},
		duplicates: duplicates,
	}

	if strings.TrimSpace(text) == "" {
		return doc, nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal([]byte(text), &node); err != nil {
		return nil, fmt.Errorf("error al parsear %s: %w", FileName, err)
	}

	if len(node.Content) == 0 || node.Content[0].Kind != yaml.MappingNode {
		return doc, nil
	}

	doc.root = collapseDuplicateKeys(node.Content[0])
	return doc, nil
}

// collapseDuplicateKeys deja una sola aparición por clave, la primera,
// imitando lo que haría un parser basado en mapping.
func collapseDuplicateKeys(mapping *yaml.Node) *yaml.Node {
	seen := make(map[string]bool)
	content := make([]*yaml.Node, 0, len(mapping.Content))

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i]
		if key.Kind == yaml.ScalarNode && seen[key.Value] {
			continue
		}
		if key.Kind == yaml.ScalarNode {
			seen[key.Value] = true
		}
		content = append(content, key, mapping.Content[i+1])
	}

	mapping.Content = content
	return mapping
}

// lookup retorna el nodo valor para una clave top-level, o nil.
func (d *Document) lookup(key string) *yaml.Node {
	for i := 0; i+1 < len(d.root.Content); i += 2 {
		if d.root.Content[i].Value == key {
			return d.root.Content[i+1]
		}
	}
	return nil
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

// SetImageKey fija la ruta relativa de una de las imágenes del instalador,
// creando la clave si no existe.
func (d *Document) SetImageKey(key, value string) {
	if existing := d.lookup(key); existing != nil {
		existing.SetString(value)
		return
	}
	d.root.Content = append(d.root.Content, scalarNode(key), scalarNode(value))
}

// RemoveEmptyImageKeys borra del documento cada clave de imagen cuyo upload
// no fue provisto. provided mapea clave → si el envío trajo esa imagen.
func (d *Document) RemoveEmptyImageKeys(provided map[string]bool) {
	for _, key := range ImageKeys {
		if provided[key] {
			continue
		}
		d.removeKey(key)
	}
}

func (d *Document) removeKey(key string) {
	for i := 0; i+1 < len(d.root.Content); i += 2 {
		if d.root.Content[i].Value == key {
			d.root.Content = append(d.root.Content[:i], d.root.Content[i+2:]...)
			return
		}
	}
}

// MergeExtraFiles agrega entradas nuevas a la tabla extra_files sin duplicar
// ni fuentes ni destinos, y deja la lista ordenada de forma determinista:
// los mappings primero (por su única clave), después el resto (por su forma
// de texto). Las entradas existentes que no son mappings de una sola clave
// se preservan como items opacos.
func (d *Document) MergeExtraFiles(entries []models.ExtraFileEntry) {
	seq := d.lookup("extra_files")
	if seq == nil {
		seq = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		d.root.Content = append(d.root.Content, scalarNode("extra_files"), seq)
	}

	sources := make(map[string]bool)
	dests := make(map[string]bool)

	for _, item := range seq.Content {
		if src, dst, ok := singleKeyMapping(item); ok {
			sources[src] = true
			dests[dst] = true
		}
	}

	for _, entry := range entries {
		if sources[entry.Source] || dests[entry.Dest] {
			continue
		}
		mapping := &yaml.Node{
			Kind:    yaml.MappingNode,
			Tag:     "!!map",
			Content: []*yaml.Node{scalarNode(entry.Source), scalarNode(entry.Dest)},
		}
		seq.Content = append(seq.Content, mapping)
		sources[entry.Source] = true
		dests[entry.Dest] = true
	}

	sort.SliceStable(seq.Content, func(i, j int) bool {
		return itemSortKey(seq.Content[i]) < itemSortKey(seq.Content[j])
	})
}

// singleKeyMapping normaliza un item de la secuencia a su par (fuente,
// destino) si es un mapping de una sola clave.
func singleKeyMapping(item *yaml.Node) (string, string, bool) {
	if item.Kind != yaml.MappingNode || len(item.Content) != 2 {
		return "", "", false
	}
	if item.Content[0].Kind != yaml.ScalarNode || item.Content[1].Kind != yaml.ScalarNode {
		return "", "", false
	}
	return item.Content[0].Value, item.Content[1].Value, true
}

// itemSortKey ordena mappings antes que no-mappings; los mappings por su
// única clave, el resto por su forma de texto.
func itemSortKey(item *yaml.Node) string {
	if src, _, ok := singleKeyMapping(item); ok {
		return "0\x00" + src
	}
	return "1\x00" + nodeString(item)
}

func nodeString(item *yaml.Node) string {
	if item.Kind == yaml.ScalarNode {
		return item.Value
	}
	out, err := yaml.Marshal(item)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// Serialize emite el documento preservando el orden de claves del autor y
// vuelve a insertar cada bloque de claves repetidas capturado: el bloque
// reemplaza la primera línea donde el serializador puso esa clave, o se
// agrega al final si la clave no sobrevivió a la serialización.
func (d *Document) Serialize() (string, error) {
	var out string

	if len(d.root.Content) > 0 {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(d.root); err != nil {
			return "", fmt.Errorf("error al serializar %s: %w", FileName, err)
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("error al serializar %s: %w", FileName, err)
		}
		out = buf.String()
	}

	for _, key := range DuplicateKeys {
		block, ok := d.duplicates[key]
		if !ok {
			continue
		}
		out = spliceBlock(out, key, block)
	}

	return out, nil
}

// spliceBlock reemplaza la primera línea "<key>: ..." del texto serializado
// por las líneas originales capturadas. Si la clave no aparece, las agrega
// al final.
func spliceBlock(text, key string, block []string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), key+":") {
			spliced := make([]string, 0, len(lines)+len(block)-1)
			spliced = append(spliced, lines[:i]...)
			spliced = append(spliced, block...)
			spliced = append(spliced, lines[i+1:]...)
			return strings.Join(spliced, "\n")
		}
	}

	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text + strings.Join(block, "\n") + "\n"
}
