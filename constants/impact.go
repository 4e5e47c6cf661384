package constants

// Impact labels attached to category groups in the executive summary.
const (
	ImpactAlto  = "Alto"
	ImpactMedio = "Medio"
	ImpactBajo  = "Bajo"
)

// DefaultImpactLabels maps a category string (exact match) to its editorial
// impact label. Unmatched categories fall back to ImpactBajo. The table can
// be overridden with a YAML file, see common.LoadImpactLabels.
var DefaultImpactLabels = map[string]string{
	"Desfase procesal":           ImpactAlto,
	"Embargo no aplicado":        ImpactAlto,
	"Pago no abonado":            ImpactAlto,
	"Desistimiento":              ImpactMedio,
	"Solicitud de documentación": ImpactMedio,
	"Actualización de datos":     ImpactBajo,
	CategoryValidarManualmente:   ImpactMedio,
	CategoryErrorFormato:         ImpactMedio,
	CategoryErrorProcesamiento:   ImpactMedio,
	CategoryErrorLectura:         ImpactMedio,
}

// ImpactFor looks up the editorial label for a category in the given table,
// falling back to the defaults and finally to ImpactBajo.
func ImpactFor(categoria string, overrides map[string]string) string {
	if overrides != nil {
		if l, ok := overrides[categoria]; ok {
			return l
		}
	}
	if l, ok := DefaultImpactLabels[categoria]; ok {
		return l
	}
	return ImpactBajo
}
