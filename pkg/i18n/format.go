// Package i18n formatea montos, porcentajes y meses según el locale de la aplicación
// (pt-BR o es-CO).
package i18n

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var monthNames = map[string][12]string{
	"pt": {"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro"},
	"es": {"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre"},
}

// Formatter formateo dependiente del locale. Es seguro para uso concurrente.
type Formatter struct {
	tag    language.Tag
	lang   string
	unit   currency.Unit
	symbol string
}

// New construye un Formatter. Locales desconocidos caen en pt-BR.
func New(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.BrazilianPortuguese
	}
	base, _ := tag.Base()
	lang := base.String()
	if _, ok := monthNames[lang]; !ok {
		tag, lang = language.BrazilianPortuguese, "pt"
	}
	unit, conf := currency.FromTag(tag)
	if conf == language.No {
		unit = currency.BRL
	}
	f := &Formatter{tag: tag, lang: lang, unit: unit}
	f.symbol = message.NewPrinter(tag).Sprint(currency.Symbol(unit))
	return f
}

// Money "R$ 1.234,50" / "$ 1.234,50". El valor se redondea a 2 decimales.
func (f *Formatter) Money(d decimal.Decimal) string {
	return message.NewPrinter(f.tag).Sprintf("%s %.2f", f.symbol, d.Round(2).InexactFloat64())
}

// Number entero con separador de miles del locale.
func (f *Formatter) Number(n int64) string {
	return message.NewPrinter(f.tag).Sprintf("%d", n)
}

// Percent "80,00%".
func (f *Formatter) Percent(d decimal.Decimal) string {
	return message.NewPrinter(f.tag).Sprintf("%.2f%%", d.Round(2).InexactFloat64())
}

// MonthLabel nombre del mes y año, ej: "Outubro 2026".
func (f *Formatter) MonthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", monthNames[f.lang][t.Month()-1], t.Year())
}

// ShortMonth abreviatura de tres letras, ej: "Out".
func (f *Formatter) ShortMonth(t time.Time) string {
	return string([]rune(monthNames[f.lang][t.Month()-1])[:3])
}

// Date fecha corta dd/mm/aaaa (igual en ambos locales).
func (f *Formatter) Date(t time.Time) string {
	return t.Format("02/01/2006")
}

// Lang idioma base del formatter ("pt" o "es").
func (f *Formatter) Lang() string { return f.lang }
