package ingest

// DedupReport 批次内重复 sku 的统计，与库存冲突分开上报
type DedupReport struct {
	Removed int      `json:"removed"`
	SKUs    []string `json:"skus"`
}

// Dedup 按 sku 去重：保留首次出现的位置，取最后一次出现的值
func Dedup(records []Record) ([]Record, DedupReport) {
	out := make([]Record, 0, len(records))
	pos := make(map[string]int, len(records))
	reported := make(map[string]struct{})
	var report DedupReport

	for _, rec := range records {
		i, seen := pos[rec.SKU]
		if !seen {
			pos[rec.SKU] = len(out)
			out = append(out, rec)
			continue
		}
		out[i] = rec
		report.Removed++
		if _, ok := reported[rec.SKU]; !ok {
			reported[rec.SKU] = struct{}{}
			report.SKUs = append(report.SKUs, rec.SKU)
		}
	}
	return out, report
}

// SKUs 提取记录的 sku 列表
func SKUs(records []Record) []string {
	skus := make([]string, len(records))
	for i, rec := range records {
		skus[i] = rec.SKU
	}
	return skus
}
