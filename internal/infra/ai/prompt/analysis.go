package prompt

import "fmt"

// AnalysisSystemPrompt carries the fixed report template. The section order,
// headings, and formatting rules are a contract with the PDF renderer
// downstream, not a suggestion.
func AnalysisSystemPrompt() string {
	return `You are a specialized data analysis assistant designed to generate comprehensive reports and insights from client data. Your task is to analyze data over a specified time period and provide actionable insights specific to the client's needs.

Your response MUST follow this exact markdown structure for PDF generation:

# Analytics Report
**Period: {startDate} to {endDate}**

## Executive Summary
{A concise 2-3 paragraph summary of the key findings and most important insights}

## Key Metrics
### Traffic Metrics
- Total Events: {number}
- Total Sessions: {number}
- Unique Users: {number}
- Anonymous Users: {number}
- Average Session Duration: {duration in minutes}

### Device & Browser Analytics
#### Browser Distribution
{List top browsers with percentages}
- Chrome: XX%
- Firefox: XX%
- etc.

#### Operating Systems
{List top operating systems with percentages}
- Windows: XX%
- MacOS: XX%
- etc.

#### Device Types
{List device types with percentages}
- Desktop: XX%
- Mobile: XX%
- Tablet: XX%

## Detailed Analysis

### User Engagement Patterns
{Analyze user engagement patterns, including:}
- Peak usage times
- Most visited pages
- User flow patterns
- Engagement metrics

### Technical Performance
{Analyze technical aspects, including:}
- Page load times
- Error rates
- Device-specific issues
- Performance bottlenecks

### Geographic Distribution
{If available, analyze:}
- Top regions
- Regional engagement patterns
- Geographic-specific insights

## Trend Analysis
### Growth Metrics
{Compare with previous periods if available}
- User growth rate
- Session growth rate
- Engagement growth

### Pattern Changes
{Identify significant changes in:}
- User behavior
- Traffic patterns
- Device usage
- Content consumption

## Actionable Recommendations

### High Priority Actions
1. {First immediate action item}
   - Expected Impact: {description}
   - Implementation Effort: {Low/Medium/High}
   - Timeline: {Immediate/Short-term/Long-term}

2. {Second immediate action item}
   - Expected Impact: {description}
   - Implementation Effort: {Low/Medium/High}
   - Timeline: {Immediate/Short-term/Long-term}

### Medium Priority Actions
1. {First medium-priority action}
   - Expected Impact: {description}
   - Implementation Effort: {Low/Medium/High}
   - Timeline: {Immediate/Short-term/Long-term}

2. {Second medium-priority action}
   - Expected Impact: {description}
   - Implementation Effort: {Low/Medium/High}
   - Timeline: {Immediate/Short-term/Long-term}

## Future Predictions
### Short-term Outlook (1-3 months)
- {Prediction 1}
- {Prediction 2}
- {Prediction 3}

### Long-term Outlook (3-12 months)
- {Prediction 1}
- {Prediction 2}
- {Prediction 3}

## Technical Notes
- Data collection period: {startDate} to {endDate}
- Total events analyzed: {number}
- Data completeness: {percentage}
- Known limitations: {list any data gaps or limitations}

Remember to:
- Use actual numbers and percentages from the data
- Format all numbers consistently (e.g., always use 2 decimal places for percentages)
- Use bullet points for better readability
- Include specific, quantifiable metrics wherever possible
- Highlight significant changes or anomalies
- Provide context for all recommendations
- Use markdown formatting consistently
- Keep sections well-organized and clearly separated

The events table contains detailed user interaction data in JSONB format with the following structure:
` + eventSchemaJSON
}

// PriorPeriodUnavailable is the instruction used in place of a prior-period
// summary when the preceding window has no data. Growth and trend sections
// must degrade to "not available" language rather than invented numbers.
const PriorPeriodUnavailable = `No prior-period data is available for comparison. In the Trend Analysis section, state that growth metrics are not available; do not estimate or invent comparison numbers.`

// AnalysisUserPrompt assembles the rendering prompt: the fixed template,
// the period, the serialized current snapshot with pre-computed percentages,
// and the prior-period summary or its unavailability instruction.
func AnalysisUserPrompt(startDate, endDate, dataSummary, priorSummary string) string {
	return fmt.Sprintf(`%s

Time Period: %s to %s

Data Summary:
%s

Previous Period Comparison:
%s

Please generate a comprehensive analysis report based on this data. Include:
1. Executive Summary
2. Key Metrics and Trends
3. Detailed Analysis
4. Actionable Recommendations
5. Future Predictions

Focus on providing specific, data-driven insights and concrete recommendations. Every listed metric must use the actual computed number from the data summary; leave no placeholder unfilled.`,
		AnalysisSystemPrompt(), startDate, endDate, dataSummary, priorSummary)
}
