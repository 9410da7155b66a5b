package intelligence

import "fmt"

const coachSystemPrompt = `Atue como um especialista em gestão financeira para motoristas de aplicativo (Uber/99).
Responda sempre em português do Brasil.`

func buildCoachPrompt(digest string) string {
	return fmt.Sprintf(`Analise os seguintes dados dos últimos dias de trabalho do motorista:

%s

Forneça uma análise concisa e direta (máximo 2 parágrafos) cobrindo:
1. Eficiência (R$/km e R$/hora).
2. Identificação de dias ruins ou bons.
3. Uma dica prática para melhorar o lucro baseada nestes números.

Use formatação Markdown simples. Seja motivador mas realista.`, digest)
}

// Fixed messages shown instead of a model answer.
const (
	MsgNotEnoughData = "Preciso de pelo menos 3 dias de registros para fazer uma análise precisa."
	MsgMissingKey    = "Chave da API não configurada. Por favor, verifique suas variáveis de ambiente."
	MsgUnreachable   = "Erro ao conectar com a Inteligência Artificial. Tente novamente mais tarde."
	MsgNoAnalysis    = "Não foi possível gerar a análise no momento."
)
