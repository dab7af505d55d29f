package email

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

// QuoteEmailData carries everything the confirmation templates render.
// Optional fields are empty strings and their sections are omitted.
type QuoteEmailData struct {
	ClientName           string
	ClientEmail          string
	ClientPhone          string
	ClientCompany        string
	ServiceType          string
	ServiceSpecification string
	Urgency              string
	ProjectDescription   string
	SubmissionDate       time.Time
}

const (
	schedulingBase = "https://calendly.com/hudsonvbadv"
	whatsappLink   = "https://wa.me/5532998114374?text=Ol%C3%A1%20Hudson!%20Recebi%20meu%20or%C3%A7amento%20e%20gostaria%20de%20agendar%20uma%20consulta."
)

var monthLong = [12]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

func formatDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), monthLong[t.Month()-1], t.Year())
}

var htmlTemplate = template.Must(template.New("quote").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Seu Orçamento - Hudson Souza Advocacia</title>
    <style>
        body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; line-height: 1.6; color: #333; background-color: #f5f5f5; margin: 0; }
        .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 8px; overflow: hidden; }
        .header { background: linear-gradient(135deg, #003366 0%, #1A2D40 100%); padding: 40px 30px; text-align: center; color: white; }
        .logo { font-size: 32px; font-weight: bold; letter-spacing: 2px; }
        .logo-subtitle { font-size: 12px; opacity: 0.9; text-transform: uppercase; letter-spacing: 1px; }
        .content { padding: 40px 30px; }
        .greeting { font-size: 18px; color: #1A2D40; margin-bottom: 20px; font-weight: 600; }
        .intro-text { color: #666; margin-bottom: 30px; font-size: 14px; }
        .quote-details { background-color: #f9f9f9; border-left: 4px solid #B89C5B; padding: 20px; margin: 30px 0; border-radius: 4px; }
        .detail-row { display: flex; justify-content: space-between; padding: 12px 0; border-bottom: 1px solid #e0e0e0; font-size: 14px; }
        .detail-row:last-child { border-bottom: none; }
        .detail-label { font-weight: 600; color: #1A2D40; }
        .detail-value { color: #666; text-align: right; }
        .service-highlight { background-color: #fff3e0; border: 1px solid #FFB74D; padding: 15px; border-radius: 4px; margin: 20px 0; text-align: center; }
        .next-steps { background-color: #f0f8ff; border-radius: 4px; padding: 20px; margin: 20px 0; }
        .cta-section { margin: 30px 0; text-align: center; }
        .cta-button { display: inline-block; background-color: #B89C5B; color: white; padding: 14px 32px; text-decoration: none; border-radius: 4px; font-weight: 600; font-size: 14px; margin: 10px 5px; }
        .cta-button.whatsapp { background-color: #25D366; }
        .footer { background-color: #f5f5f5; padding: 30px; border-top: 1px solid #e0e0e0; text-align: center; font-size: 12px; color: #999; }
        .contact-info { margin: 15px 0; color: #666; font-size: 13px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <div class="logo">HS</div>
            <div class="logo-subtitle">Hudson Souza Advocacia</div>
        </div>
        <div class="content">
            <div class="greeting">Olá {{.ClientName}},</div>
            <p class="intro-text">
                Obrigado por solicitar um orçamento! Recebemos sua solicitação com sucesso e preparamos uma proposta personalizada para seus serviços de propriedade intelectual. Confira os detalhes abaixo.
            </p>
            <div class="quote-details">
                <div class="detail-row">
                    <span class="detail-label">Tipo de Serviço:</span>
                    <span class="detail-value">{{.ServiceType}}</span>
                </div>
                {{if .ServiceSpecification}}
                <div class="detail-row">
                    <span class="detail-label">Especificação:</span>
                    <span class="detail-value">{{.ServiceSpecification}}</span>
                </div>
                {{end}}
                <div class="detail-row">
                    <span class="detail-label">Nível de Urgência:</span>
                    <span class="detail-value">{{.Urgency}}</span>
                </div>
                {{if .ClientCompany}}
                <div class="detail-row">
                    <span class="detail-label">Empresa:</span>
                    <span class="detail-value">{{.ClientCompany}}</span>
                </div>
                {{end}}
                <div class="detail-row">
                    <span class="detail-label">Data da Solicitação:</span>
                    <span class="detail-value">{{.FormattedDate}}</span>
                </div>
                <div class="detail-row">
                    <span class="detail-label">Contato:</span>
                    <span class="detail-value">{{.ClientPhone}}</span>
                </div>
            </div>
            {{if .ProjectDescription}}
            <div class="service-highlight">
                <h3>📝 Descrição do Projeto</h3>
                <p>{{.ProjectDescription}}</p>
            </div>
            {{end}}
            <div class="next-steps">
                <h4>⏱️ Próximos Passos</h4>
                <ol>
                    <li>Analisaremos sua solicitação em detalhes</li>
                    <li>Preparamos um orçamento personalizado com base em suas necessidades</li>
                    <li>Entraremos em contato para confirmar os detalhes e agendar a consulta</li>
                    <li>Iniciamos o processo de proteção de seus ativos intangíveis</li>
                </ol>
            </div>
            <div class="cta-section">
                <p><strong>Deseja agendar uma consulta agora?</strong></p>
                <a href="{{.SchedulingLink}}" class="cta-button">📅 Agendar Consulta</a>
                <a href="{{.WhatsappLink}}" class="cta-button whatsapp">💬 Conversar no WhatsApp</a>
            </div>
            <p style="color: #666; font-size: 13px; margin: 20px 0;">
                <strong>Informações Importantes:</strong><br>
                • Prazo de resposta: até 24 horas<br>
                • Consultoria inicial: sem custos adicionais<br>
                • Pagamento: à vista ou em até 12x no cartão de crédito<br>
                • Acompanhamento total do processo no INPI
            </p>
        </div>
        <div class="footer">
            <div class="contact-info">
                <strong>Hudson Souza Advocacia</strong><br>
                Especialista em Propriedade Intelectual
            </div>
            <div class="contact-info">
                📞 <strong>(32) 99811-4374</strong><br>
                📧 <strong>hudsonvbadv@gmail.com</strong><br>
                📍 Juiz de Fora, MG
            </div>
            <p>
                Este é um email automático gerado a partir de sua solicitação de orçamento.<br>
                Não responda este email. Para dúvidas, entre em contato através dos canais acima.
            </p>
        </div>
    </div>
</body>
</html>
`))

type htmlData struct {
	QuoteEmailData
	FormattedDate  string
	SchedulingLink string
	WhatsappLink   string
}

// RenderHTML builds the HTML confirmation body.
func RenderHTML(data QuoteEmailData) (string, error) {
	var buf strings.Builder
	err := htmlTemplate.Execute(&buf, htmlData{
		QuoteEmailData: data,
		FormattedDate:  formatDate(data.SubmissionDate),
		SchedulingLink: fmt.Sprintf("%s?utm_source=quote_email&utm_medium=email&utm_campaign=%s", schedulingBase, template.URLQueryEscaper(data.ClientName)),
		WhatsappLink:   whatsappLink,
	})
	if err != nil {
		return "", fmt.Errorf("render quote email: %w", err)
	}
	return buf.String(), nil
}

// RenderText builds the plain-text alternative for clients without HTML.
func RenderText(data QuoteEmailData) string {
	var b strings.Builder
	divider := strings.Repeat("═", 39)

	b.WriteString("HUDSON SOUZA ADVOCACIA\n")
	b.WriteString("Especialista em Propriedade Intelectual\n\n")
	fmt.Fprintf(&b, "Olá %s,\n\n", data.ClientName)
	b.WriteString("Obrigado por solicitar um orçamento! Recebemos sua solicitação com sucesso e preparamos uma proposta personalizada para seus serviços de propriedade intelectual.\n\n")

	b.WriteString("DETALHES DA SOLICITAÇÃO\n")
	b.WriteString(divider + "\n\n")
	fmt.Fprintf(&b, "Tipo de Serviço: %s\n", data.ServiceType)
	if data.ServiceSpecification != "" {
		fmt.Fprintf(&b, "Especificação: %s\n", data.ServiceSpecification)
	}
	fmt.Fprintf(&b, "Nível de Urgência: %s\n", data.Urgency)
	if data.ClientCompany != "" {
		fmt.Fprintf(&b, "Empresa: %s\n", data.ClientCompany)
	}
	fmt.Fprintf(&b, "Data da Solicitação: %s\n", formatDate(data.SubmissionDate))
	fmt.Fprintf(&b, "Contato: %s\n\n", data.ClientPhone)

	if data.ProjectDescription != "" {
		b.WriteString("DESCRIÇÃO DO PROJETO\n")
		b.WriteString(divider + "\n")
		b.WriteString(data.ProjectDescription + "\n\n")
	}

	b.WriteString("PRÓXIMOS PASSOS\n")
	b.WriteString(divider + "\n\n")
	b.WriteString("1. Analisaremos sua solicitação em detalhes\n")
	b.WriteString("2. Preparamos um orçamento personalizado com base em suas necessidades\n")
	b.WriteString("3. Entraremos em contato para confirmar os detalhes e agendar a consulta\n")
	b.WriteString("4. Iniciamos o processo de proteção de seus ativos intangíveis\n\n")

	b.WriteString("AGENDAR CONSULTA\n")
	b.WriteString(divider + "\n\n")
	b.WriteString("Deseja agendar uma consulta agora?\n\n")
	b.WriteString("Calendário: " + schedulingBase + "\n")
	b.WriteString("WhatsApp: https://wa.me/5532998114374\n\n")

	b.WriteString("INFORMAÇÕES IMPORTANTES\n")
	b.WriteString(divider + "\n\n")
	b.WriteString("• Prazo de resposta: até 24 horas\n")
	b.WriteString("• Consultoria inicial: sem custos adicionais\n")
	b.WriteString("• Pagamento: à vista ou em até 12x no cartão de crédito\n")
	b.WriteString("• Acompanhamento total do processo no INPI\n\n")

	b.WriteString("CONTATO\n")
	b.WriteString(divider + "\n\n")
	b.WriteString("Hudson Souza Advocacia\n")
	b.WriteString("Especialista em Propriedade Intelectual\n\n")
	b.WriteString("📞 (32) 99811-4374\n")
	b.WriteString("📧 hudsonvbadv@gmail.com\n")
	b.WriteString("📍 Juiz de Fora, MG\n\n")
	b.WriteString("---\n\n")
	b.WriteString("Este é um email automático gerado a partir de sua solicitação de orçamento.\n")
	b.WriteString("Não responda este email. Para dúvidas, entre em contato através dos canais acima.\n")

	return b.String()
}
