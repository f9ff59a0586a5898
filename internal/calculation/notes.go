package calculation

import (
	"fmt"

	"github.com/prepaylab/prepay-calculator/internal/domain"
)

// GenerateNotes lists the modeling assumptions behind a calculation, filled
// in with the loan's own figures.
func GenerateNotes(in domain.LoanInputs) []string {
	notes := []string{
		fmt.Sprintf("月利率 = 年利率 %s%% / 12，利率在整个期限内不变", in.AnnualRatePercent.String()),
		"利息按每期期初剩余本金计算，最后一期按剩余本金结清",
		"违约金取 按比例金额 与 固定金额 中的较大者",
	}
	if in.PenaltyFreeMonths != nil {
		notes = append(notes, fmt.Sprintf("已还满 %d 期后提前还款免违约金", *in.PenaltyFreeMonths))
	}
	switch in.RepaymentType {
	case domain.RepaymentEPI:
		notes = append(notes, "等额本息：缩短期限保持原月供不变，减少月供保持剩余期数不变")
	case domain.RepaymentEP:
		notes = append(notes, "等额本金：缩短期限保持原每期本金不变，减少月供按剩余期数重新摊分本金")
	}
	notes = append(notes, "金额仅在展示时四舍五入到分")
	return notes
}
