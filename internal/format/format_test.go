package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumber(t *testing.T) {
	cases := map[float64]string{
		0:    "0",
		5:    "+5",
		-5:   "-5",
		2.5:  "+2.5",
		-0.1: "-0.1",
		1000: "+1000",
	}
	for in, want := range cases {
		assert.Equal(t, want, Number(in), "Number(%v)", in)
	}
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 0.0, Progress(0, 34))
	assert.Equal(t, 100.0, Progress(34, 34))
	assert.Equal(t, 100.0, Progress(50, 34))
	assert.Equal(t, 0.0, Progress(-3, 34))
	assert.Equal(t, 0.0, Progress(10, 0))
	assert.InDelta(t, 50.0, Progress(17, 34), 1e-9)

	for c := 0; c <= 34; c++ {
		got := Progress(float64(c), 34)
		assert.InDelta(t, float64(c)/34*100, got, 1e-9)
	}
}

func TestCleanStrategyName(t *testing.T) {
	assert.Equal(t, "策略A", CleanStrategyName("策略A(v2)"))
	assert.Equal(t, "热门3码", CleanStrategyName("热门3码 (hot)"))
	assert.Equal(t, "ab", CleanStrategyName("a(1)b(2)"))
	assert.Equal(t, "", CleanStrategyName(""))
}

func TestSimplifyCarName(t *testing.T) {
	assert.Equal(t, "A8", SimplifyCarName("奔驰A8"))
	assert.Equal(t, "红X5", SimplifyCarName("宝马红X5"))
	assert.Equal(t, "Q7", SimplifyCarName(" 奥迪Q7 "))
	assert.Equal(t, "", SimplifyCarName(""))
}

func TestColorClasses(t *testing.T) {
	assert.Equal(t, TagRed, CarColorClass("红奔驰"))
	assert.Equal(t, TagGreen, CarColorClass("绿宝马"))
	assert.Equal(t, TagYellow, CarColorClass("黄大众"))
	assert.Equal(t, "", CarColorClass("奥迪"))

	assert.Equal(t, TextDanger, ResultColorClass("红奔驰[x40]"))
	assert.Equal(t, TextInfo, ResultColorClass("大三元"))
	assert.Equal(t, TextInfo, ResultColorClass("大四喜"))
	assert.Equal(t, "", ResultColorClass(""))

	assert.Equal(t, TextSuccess, ValueColorClass(1))
	assert.Equal(t, TextDanger, ValueColorClass(-1))
	assert.Equal(t, TextSecondary, ValueColorClass(0))
	assert.Equal(t, BadgeDanger, BadgeClass(-2))
}

func TestTimeAndPercent(t *testing.T) {
	assert.Equal(t, "00:34", Time(34))
	assert.Equal(t, "01:05", Time(65))
	assert.Equal(t, "01:00:01", Time(3601))
	assert.Equal(t, "00:00", Time(-4))

	assert.Equal(t, "0%", Percent(3, 0, 1))
	assert.Equal(t, "33.3%", Percent(1, 3, 1))
	assert.Equal(t, "50%", Percent(1, 2, 0))
}

func TestCircularProgress(t *testing.T) {
	ring := NewCircularProgress(60, 8)
	assert.Equal(t, 56.0, ring.NormalizedRadius)
	assert.InDelta(t, 112*math.Pi, ring.Circumference, 1e-9)
	assert.InDelta(t, ring.Circumference, ring.Dashoffset(0), 1e-9)
	assert.InDelta(t, 0, ring.Dashoffset(100), 1e-9)
}
