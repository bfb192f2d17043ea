package monitor

import (
	"log/slog"
	"net/http"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"

	"github.com/qualityline/qualityline/internal/quality"
	"github.com/qualityline/qualityline/internal/report"
)

// metrics returns GET /metrics in Prometheus text exposition format, built
// from the current report snapshot. Values are session-scoped gauges — they
// reset when the process restarts, which matches the in-memory session model.
func (h *Handler) metrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := h.sys.Report()
	families := metricFamilies(snap)

	format := expfmt.NewFormat(expfmt.TypeTextPlain)
	w.Header().Set("Content-Type", string(format))
	enc := expfmt.NewEncoder(w, format)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			slog.Error("monitor: metrics encode failed", "family", mf.GetName(), "err", err)
			return
		}
	}
}

// metricFamilies converts a snapshot into Prometheus metric families.
func metricFamilies(snap report.Snapshot) []*dto.MetricFamily {
	families := []*dto.MetricFamily{
		gauge("qualityline_pieces_total", "Pieces registered this session.",
			float64(snap.TotalPieces)),
		gauge("qualityline_pieces_approved", "Pieces that passed the quality gate.",
			float64(snap.ApprovedCount)),
		gauge("qualityline_pieces_rejected", "Pieces that failed the quality gate.",
			float64(snap.RejectedCount)),
		gauge("qualityline_boxes_closed", "Boxes sealed at capacity.",
			float64(snap.Storage.ClosedBoxes)),
		gauge("qualityline_open_box_fill", "Pieces in the current open box.",
			float64(snap.Storage.OpenBoxFill)),
	}

	rej := &dto.MetricFamily{
		Name: proto.String("qualityline_rejections"),
		Help: proto.String("Rejection reasons recorded this session, by category."),
		Type: dto.MetricType_GAUGE.Enum(),
	}
	for _, reason := range quality.AllReasons {
		rej.Metric = append(rej.Metric, &dto.Metric{
			Label: []*dto.LabelPair{{
				Name:  proto.String("reason"),
				Value: proto.String(string(reason)),
			}},
			Gauge: &dto.Gauge{Value: proto.Float64(float64(snap.Rejections[reason]))},
		})
	}
	families = append(families, rej)

	return families
}

func gauge(name, help string, value float64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name:   proto.String(name),
		Help:   proto.String(help),
		Type:   dto.MetricType_GAUGE.Enum(),
		Metric: []*dto.Metric{{Gauge: &dto.Gauge{Value: proto.Float64(value)}}},
	}
}
