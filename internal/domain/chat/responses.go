package chat

// Canned responses for the conversational intents. Answers use light
// markdown; the serving layers render or strip it as they see fit.

var greetings = []string{
	"Hello! I'm your groundwater assistant. I can help you with groundwater and rainfall data, trends, and predictions. What would you like to know?",
	"Hi there! I can answer questions about groundwater levels, rainfall patterns, and future estimates. How can I help?",
	"Welcome! Ask me about rainfall, groundwater levels, district data, or forecasts for any state in the dataset.",
}

// greetingResponse picks a greeting deterministically from the input so the
// same text always produces the same answer.
func (e *Engine) greetingResponse(text string) string {
	return greetings[len(text)%len(greetings)]
}

const helpResponse = `**I can help you with:**

**Data queries:**
- "What's the rainfall in Maharashtra?"
- "Show me groundwater levels in Delhi"
- "Rainfall in Delhi for 06-2023"

**Predictions:**
- "Predict groundwater level for Maharashtra with 150mm rainfall"
- "What will be the water level if rainfall is 100mm?"

**Future estimates:**
- "Future rainfall forecast for Maharashtra"
- "What will be the groundwater levels in Karnataka next year?"
- "Estimate rainfall for Delhi for 2025"

**Trends and analysis:**
- "Show rainfall trends in Karnataka"
- "How has groundwater changed over time?"

**Geographic queries:**
- "Show me districts in Maharashtra"
- "Groundwater in Pune district"

Be specific about states, districts, or time periods for the best answers.`

const comparisonResponse = `**Comparison queries:**

Comparing data between states or districts is not supported yet. Try specific
questions instead, like:
- "Compare rainfall between Maharashtra and Karnataka"
- "Which state has higher groundwater levels?"

*Advanced comparison features are still being developed.*`

const defaultResponse = `**I didn't quite understand that query.**

Here are some things I can help you with:

- **Rainfall data:** ask about rainfall in specific states or time periods
- **Groundwater levels:** query groundwater data by state or district
- **Predictions:** get groundwater level predictions based on rainfall
- **Trends:** analyze how water levels change over time

**Try asking:**
- "What's the rainfall in Maharashtra?"
- "Show me groundwater levels in Delhi"
- "Predict groundwater level for Karnataka with 120mm rainfall"

Type **help** for the full list of things I understand.`

const rainfallUsage = `**Rainfall query:**

Please specify a state. For example:
- "Rainfall in Maharashtra"
- "Show rainfall data for Karnataka"
- "Rainfall in Delhi for 06-2023"`

const groundwaterUsage = `**Groundwater query:**

Please specify a state or district. For example:
- "Groundwater levels in Maharashtra"
- "Show groundwater data for Delhi"
- "Groundwater in Pune for 06-2023"`

const predictionUsage = `**Prediction query:**

Please provide both a state and a rainfall value. For example:
- "Predict groundwater level for Maharashtra with 150mm rainfall"
- "What will be the water level in Delhi if rainfall is 100mm?"
- "Predict groundwater for Pune district with 120mm rainfall for 2024"`

const trendUsage = `**Trend analysis:**

Please specify a state for trend analysis. For example:
- "Show rainfall trends in Maharashtra"
- "Groundwater trends in Karnataka"`

const districtUsage = `**District query:**

Please specify a state to see its districts. For example:
- "Show me districts in Maharashtra"
- "What districts are in Karnataka?"`

const futureUsage = `**Future prediction query:**

Please specify a state for future predictions. For example:
- "Future rainfall forecast for Maharashtra"
- "What will be the groundwater levels in Karnataka next year?"
- "Estimate rainfall for Delhi for 2025"`

const modelUnavailableResponse = `**Prediction model unavailable:**

The prediction model is not loaded. Data queries still work; predictions will
come back once the model artifact is available.`

const predictionFailedResponse = `**Prediction failed:**

Unable to generate a prediction. Please check the input parameters.`
