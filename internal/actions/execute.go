package actions

import (
	"math"

	"github.com/fortunesim/fortune-simulator-backend/internal/apperrors"
	"github.com/fortunesim/fortune-simulator-backend/internal/engine"
	"github.com/fortunesim/fortune-simulator-backend/internal/model"
)

// Params carries optional user input for an action. Zero values mean
// "use the action's default".
type Params struct {
	Name         string  `json:"name,omitempty"`
	Amount       float64 `json:"amount,omitempty"`
	Price        float64 `json:"price,omitempty"`
	DownPayment  float64 `json:"downPayment,omitempty"`
	Cost         float64 `json:"cost,omitempty"`
	SpouseIncome float64 `json:"spouseIncome,omitempty"`
	Years        int     `json:"years,omitempty"`
}

// Result reports an action's outcome. Fields are populated per action;
// Success covers actions with a pass/fail roll and defaults to true for
// the rest.
type Result struct {
	Success     bool           `json:"success"`
	Skill       string         `json:"skill,omitempty"`
	Gain        int            `json:"gain,omitempty"`
	IncomeBonus float64        `json:"incomeBonus,omitempty"`
	Raise       float64        `json:"raise,omitempty"`
	Earned      float64        `json:"earned,omitempty"`
	Lost        float64        `json:"lost,omitempty"`
	Insight     int            `json:"insight,omitempty"`
	Holding     *model.Holding `json:"holding,omitempty"`
	Message     string         `json:"message,omitempty"`
}

// Executor runs one action's behavior against the player. Time has
// already been spent by the caller; the executor only applies the
// action's own state changes.
type Executor func(e *engine.Engine, p *model.Player, params Params) Result

// executors is the dispatch table joining catalog ids to behavior.
var executors = map[string]Executor{
	"buy_stock":         buyAsset(model.AssetStock, "Stock pick", 50000, 0.2),
	"buy_fund":          buyAsset(model.AssetFund, "Index fund", 30000, 0.15),
	"buy_crypto":        buyAsset(model.AssetCrypto, "Crypto position", 30000, 0.1),
	"study_stock":       studyField(model.FieldStock, 5000, 100),
	"study_fund":        studyField(model.FieldFund, 3000, 100),
	"study_crypto":      studyField(model.FieldCrypto, 3000, 100),
	"study_real_estate": studyField(model.FieldRealEstate, 5000, 100),
	"study_business":    studyField(model.FieldBusiness, 8000, 150),
	"study_career":      studyCareer,
	"work_hard":         workHard,
	"find_job":          findJob,
	"side_business":     sideBusiness,
	"start_business":    startBusiness,
	"dating":            dating,
	"marry":             marry,
	"have_baby":         haveBaby,
	"buy_car":           buyCar,
	"buy_house":         buyHouse,
	"rest":              leisure(2000, 2),
	"travel":            leisure(10000, 5),
	"skip_month":        skipMonth,
}

// Execute runs the executor registered for id. The catalog entry and
// the executor must both exist; a missing executor for a known id is a
// programming error surfaced as ErrUnknownAction all the same.
func Execute(e *engine.Engine, p *model.Player, id string, params Params) (Result, error) {
	exec, ok := executors[id]
	if !ok {
		return Result{}, apperrors.ErrUnknownAction
	}
	return exec(e, p, params), nil
}

// buyAsset builds the executor for the simple buy actions. Without an
// explicit amount it invests defaultCap or cashFraction of cash,
// whichever is smaller.
func buyAsset(assetType, defaultName string, defaultCap, cashFraction float64) Executor {
	return func(e *engine.Engine, p *model.Player, params Params) Result {
		amount := params.Amount
		if amount <= 0 {
			amount = math.Min(defaultCap, p.Stats.Cash*cashFraction)
		}
		name := params.Name
		if name == "" {
			name = defaultName
		}

		h := e.Buy(p, assetType, name, amount, params.Price)
		return Result{Success: h != nil, Holding: h}
	}
}

// studyField builds the executor for the plain study actions: pay the
// course fee, train the field.
func studyField(field string, fee, hours float64) Executor {
	return func(e *engine.Engine, p *model.Player, _ Params) Result {
		p.Stats.Cash -= fee
		gain := e.Study(p, field, hours)
		e.RecalculateWealth(p)
		return Result{Success: true, Skill: field, Gain: gain}
	}
}

// studyCareer is the certificate course: besides the skill gain, the
// certificate lands a 12000 income bump 60% of the time.
func studyCareer(e *engine.Engine, p *model.Player, _ Params) Result {
	p.Stats.Cash -= 10000
	gain := e.Study(p, model.FieldCareer, 150)

	res := Result{Success: true, Skill: model.FieldCareer, Gain: gain}
	if e.Roll() < 0.6 {
		p.Stats.Income += 12000
		res.IncomeBonus = 12000
	}
	e.RecalculateWealth(p)
	return res
}

func workHard(e *engine.Engine, p *model.Player, _ Params) Result {
	chance := 0.3 + float64(p.SkillLevel(model.FieldCareer))*0.005
	if e.Roll() >= chance {
		return Result{}
	}
	raise := math.Floor(p.Stats.Income * 0.1)
	p.Stats.Income += raise
	e.RecalculateWealth(p)
	return Result{Success: true, Raise: raise}
}

func findJob(e *engine.Engine, p *model.Player, _ Params) Result {
	chance := 0.4 + float64(p.SkillLevel(model.FieldCareer))*0.006
	if e.Roll() >= chance {
		return Result{}
	}
	newIncome := math.Floor(p.Stats.Income * (1.2 + e.Roll()*0.3))
	raise := newIncome - p.Stats.Income
	p.Stats.Income = newIncome
	e.RecalculateWealth(p)
	return Result{Success: true, Raise: raise}
}

func sideBusiness(e *engine.Engine, p *model.Player, _ Params) Result {
	base := 2000 + e.Roll()*8000
	earned := math.Floor(base * (1 + float64(p.SkillLevel(model.FieldBusiness))*0.02))
	p.Stats.Cash += earned

	// Moonlighting occasionally teaches something.
	if e.Roll() < 0.3 {
		e.Study(p, model.FieldBusiness, 30)
	}
	e.RecalculateWealth(p)
	return Result{Success: true, Earned: earned}
}

// startBusiness stakes the investment on a skill-weighted roll. Success
// opens a business holding worth twice the stake and ends the salary;
// failure burns the stake but trains the business skill.
func startBusiness(e *engine.Engine, p *model.Player, params Params) Result {
	investment := params.Amount
	if investment <= 0 {
		investment = 100000
	}
	if p.Stats.Cash < investment {
		return Result{Message: "insufficient funds"}
	}

	name := params.Name
	if name == "" {
		name = "Startup"
	}

	p.Stats.Cash -= investment
	chance := 0.2 + float64(p.SkillLevel(model.FieldBusiness))*0.008

	if e.Roll() < chance {
		h := e.Buy(p, model.AssetBusiness, name, investment*2, 0)
		p.Stats.Income = 0
		e.RecalculateWealth(p)
		return Result{Success: true, Holding: h}
	}

	e.Study(p, model.FieldBusiness, 50)
	e.RecalculateWealth(p)
	return Result{Lost: investment}
}

func dating(e *engine.Engine, p *model.Player, _ Params) Result {
	p.Stats.Cash -= 3000
	e.RecalculateWealth(p)

	chance := 0.3 + float64(p.Stats.Insight)*0.003
	if e.Roll() < chance {
		return Result{Success: true, Message: "you met someone special"}
	}
	return Result{}
}

func marry(e *engine.Engine, p *model.Player, params Params) Result {
	cost := params.Cost
	if cost <= 0 {
		cost = 200000
	}
	spouseIncome := params.SpouseIncome
	if spouseIncome <= 0 {
		spouseIncome = 60000
	}
	return Result{Success: e.Marry(p, cost, spouseIncome)}
}

func haveBaby(e *engine.Engine, p *model.Player, _ Params) Result {
	return Result{Success: e.HaveBaby(p, 50000)}
}

func buyCar(e *engine.Engine, p *model.Player, params Params) Result {
	price := params.Price
	if price <= 0 {
		price = 150000
	}
	name := params.Name
	if name == "" {
		name = "Car"
	}
	return Result{Success: e.BuyCar(p, name, price) != nil}
}

// buyHouse pays the down payment (30% by default) and mortgages the
// remainder over the requested term.
func buyHouse(e *engine.Engine, p *model.Player, params Params) Result {
	price := params.Price
	if price <= 0 {
		price = 2000000
	}
	down := params.DownPayment
	if down <= 0 {
		down = price * 0.3
	}
	years := params.Years
	if years <= 0 {
		years = 30
	}
	name := params.Name
	if name == "" {
		name = "Home"
	}

	if e.BuyHouse(p, name, price, down) == nil {
		return Result{}
	}
	if loanAmount := price - down; loanAmount > 0 {
		e.TakeLoan(p, "mortgage", loanAmount, years)
	}
	return Result{Success: true}
}

// leisure builds the rest/travel executors: pay, relax, sharpen the eye.
func leisure(fee float64, insightGain int) Executor {
	return func(e *engine.Engine, p *model.Player, _ Params) Result {
		p.Stats.Cash -= fee
		p.Stats.Insight = min(100, p.Stats.Insight+insightGain)
		e.RecalculateWealth(p)
		return Result{Success: true, Insight: insightGain}
	}
}

func skipMonth(_ *engine.Engine, _ *model.Player, _ Params) Result {
	return Result{Success: true}
}
