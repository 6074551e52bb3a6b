package common

import (
	"bytes"
	"fmt"
	"image/color"
	"sort"

	"github.com/Freeeeeet/institute_admin_bot/internal/stats"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Константы размеров и отступов диаграммы
const (
	chartWidth       = 1200
	chartHeight      = 700
	chartHeaderH     = 70
	chartPaddingX    = 60
	chartPaddingBot  = 80
	barGap           = 18
	maxBarWidth      = 90.0
	minBarHeight     = 2.0
	barBorderRadius  = 5.0
	chartShadowShift = 3.0
	gridLines        = 5
)

// Цветовая схема диаграммы
var (
	chartBgColor      = color.RGBA{245, 246, 248, 255}
	chartTextColor    = color.RGBA{80, 85, 90, 220}
	chartGridColor    = color.NRGBA{150, 150, 150, 120}
	chartAxisColor    = color.NRGBA{110, 115, 120, 255}
	barIndividualClr  = color.RGBA{133, 193, 85, 230}
	barGroupClr       = color.RGBA{255, 182, 193, 255}
	barShadowColor    = color.RGBA{0, 0, 0, 20}
	chartLegendColor  = color.RGBA{70, 74, 78, 220}
	chartHoursLblColr = color.RGBA{90, 95, 100, 220}
)

// subjectBar пара столбцов одного предмета
type subjectBar struct {
	subject    string
	individual float64
	group      float64
}

// GenerateHoursChart строит столбчатую диаграмму часов по предметам:
// по паре столбцов (индивидуальные/групповые) на каждый предмет.
// Пустая сводка даёт диаграмму с одной осью и подписью периода.
func GenerateHoursChart(summary *stats.Summary, month, year int) ([]byte, error) {
	bars := collectBars(summary)

	dc := gg.NewContext(chartWidth, chartHeight)
	dc.SetColor(chartBgColor)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	drawChartHeader(dc, month, year)

	maxHours := maxBarHours(bars)
	plotTop := float64(chartHeaderH)
	plotBottom := float64(chartHeight - chartPaddingBot)
	plotHeight := plotBottom - plotTop

	drawChartGrid(dc, maxHours, plotTop, plotBottom)
	drawBars(dc, bars, maxHours, plotBottom, plotHeight)
	drawChartLegend(dc)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// collectBars разворачивает сводку в отсортированный по предметам список
func collectBars(summary *stats.Summary) []subjectBar {
	bars := make([]subjectBar, 0, len(summary.BySubject))
	for subject, s := range summary.BySubject {
		bars = append(bars, subjectBar{
			subject:    subject,
			individual: s.Individual.Hours,
			group:      s.Group.Hours,
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].subject < bars[j].subject })
	return bars
}

func maxBarHours(bars []subjectBar) float64 {
	maxHours := 1.0
	for _, bar := range bars {
		if bar.individual > maxHours {
			maxHours = bar.individual
		}
		if bar.group > maxHours {
			maxHours = bar.group
		}
	}
	return maxHours
}

// drawChartHeader рисует заголовок с периодом
func drawChartHeader(dc *gg.Context, month, year int) {
	title := fmt.Sprintf("Hours by subject — %02d/%d", month, year)
	dc.SetColor(chartTextColor)
	dc.DrawStringAnchored(title, float64(chartWidth)/2, float64(chartHeaderH)/2, 0.5, 0.5)
}

// drawChartGrid рисует горизонтальные линии сетки с подписями часов
func drawChartGrid(dc *gg.Context, maxHours, plotTop, plotBottom float64) {
	plotHeight := plotBottom - plotTop

	for i := 0; i <= gridLines; i++ {
		y := plotBottom - plotHeight*float64(i)/float64(gridLines)
		hours := maxHours * float64(i) / float64(gridLines)

		dc.SetColor(chartGridColor)
		dc.SetLineWidth(0.5)
		dc.DrawLine(float64(chartPaddingX), y, float64(chartWidth-chartPaddingX), y)
		dc.Stroke()

		dc.SetColor(chartHoursLblColr)
		dc.DrawStringAnchored(fmt.Sprintf("%.1f", stats.Round2(hours)), float64(chartPaddingX)-8, y, 1, 0.5)
	}

	// Ось X
	dc.SetColor(chartAxisColor)
	dc.SetLineWidth(1.5)
	dc.DrawLine(float64(chartPaddingX), plotBottom, float64(chartWidth-chartPaddingX), plotBottom)
	dc.Stroke()
}

// drawBars рисует пары столбцов по каждому предмету
func drawBars(dc *gg.Context, bars []subjectBar, maxHours, plotBottom, plotHeight float64) {
	if len(bars) == 0 {
		return
	}

	plotWidth := float64(chartWidth - 2*chartPaddingX)
	slotWidth := plotWidth / float64(len(bars))
	barWidth := (slotWidth - barGap) / 2
	if barWidth > maxBarWidth {
		barWidth = maxBarWidth
	}

	for i, bar := range bars {
		slotX := float64(chartPaddingX) + slotWidth*float64(i)
		centerX := slotX + slotWidth/2

		drawBar(dc, centerX-barWidth-2, bar.individual, maxHours, plotBottom, plotHeight, barWidth, barIndividualClr)
		drawBar(dc, centerX+2, bar.group, maxHours, plotBottom, plotHeight, barWidth, barGroupClr)

		// Подпись предмета под осью
		dc.SetColor(chartTextColor)
		dc.DrawStringAnchored(truncateLabel(bar.subject, 14), centerX, plotBottom+18, 0.5, 0.5)
	}
}

// drawBar рисует один столбец с тенью
func drawBar(dc *gg.Context, x, hours, maxHours, plotBottom, plotHeight, barWidth float64, fill color.RGBA) {
	if hours <= 0 {
		return
	}

	barHeight := plotHeight * hours / maxHours
	if barHeight < minBarHeight {
		barHeight = minBarHeight
	}
	barY := plotBottom - barHeight

	// Тень
	dc.SetColor(barShadowColor)
	dc.DrawRoundedRectangle(x+chartShadowShift, barY+chartShadowShift, barWidth, barHeight, barBorderRadius)
	dc.Fill()

	// Основной столбец
	dc.SetColor(fill)
	dc.DrawRoundedRectangle(x, barY, barWidth, barHeight, barBorderRadius)
	dc.Fill()

	// Значение над столбцом
	dc.SetColor(chartTextColor)
	dc.DrawStringAnchored(fmt.Sprintf("%.1f", stats.Round2(hours)), x+barWidth/2, barY-10, 0.5, 0.5)
}

// drawChartLegend рисует легенду внизу
func drawChartLegend(dc *gg.Context) {
	legendY := float64(chartHeight) - 28.0
	boxW := 20.0
	boxH := 12.0

	legendItems := []struct {
		Label string
		Clr   color.Color
	}{
		{"Individual", barIndividualClr},
		{"Group", barGroupClr},
	}

	liX := float64(chartPaddingX)
	for _, item := range legendItems {
		dc.SetColor(item.Clr)
		dc.DrawRoundedRectangle(liX, legendY, boxW, boxH, 3)
		dc.Fill()

		dc.SetColor(chartLegendColor)
		dc.DrawStringAnchored(item.Label, liX+boxW+8, legendY+boxH/2, 0, 0.5)
		liX += boxW + 110
	}
}

// Диаграмма подписывается API-именами предметов: basicfont не содержит
// глифов кириллицы и арабского, подписи каталога остаются в тексте сообщения
func truncateLabel(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
