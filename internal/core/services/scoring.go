package services

// scoreLabels computes accuracy and support-weighted precision, recall and
// F1 over a prediction set, keyed with the given metric prefix. Labels
// outside the known set still count toward support and errors.
func scoreLabels(expected, predicted []string, labels []string, prefix string) map[string]float64 {
	n := len(expected)
	if n == 0 || n != len(predicted) {
		return map[string]float64{}
	}

	known := make(map[string]bool, len(labels))
	for _, l := range labels {
		known[l] = true
	}

	correct := 0
	tp := map[string]int{}
	fp := map[string]int{}
	fn := map[string]int{}
	support := map[string]int{}

	for i := range expected {
		exp, pred := expected[i], predicted[i]
		support[exp]++
		if exp == pred {
			correct++
			tp[exp]++
		} else {
			fn[exp]++
			fp[pred]++
		}
	}

	var precisionSum, recallSum, f1Sum float64
	for label, count := range support {
		if !known[label] {
			continue
		}

		var precision, recall, f1 float64
		if tp[label]+fp[label] > 0 {
			precision = float64(tp[label]) / float64(tp[label]+fp[label])
		}
		if tp[label]+fn[label] > 0 {
			recall = float64(tp[label]) / float64(tp[label]+fn[label])
		}
		if precision+recall > 0 {
			f1 = 2 * precision * recall / (precision + recall)
		}

		weight := float64(count)
		precisionSum += precision * weight
		recallSum += recall * weight
		f1Sum += f1 * weight
	}

	total := float64(n)
	return map[string]float64{
		prefix + "_accuracy":           float64(correct) / total,
		prefix + "_precision_weighted": precisionSum / total,
		prefix + "_recall_weighted":    recallSum / total,
		prefix + "_f1_weighted":        f1Sum / total,
	}
}
