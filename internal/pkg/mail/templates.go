package mail

import "fmt"

// Portal notification emails. Kept as plain HTML strings the way the
// association's previous system rendered them.

func WelcomeBody(name, activationURL string) (subject, body string) {
	subject = "Bem-vindo ao SocioClube"
	body = fmt.Sprintf(
		"<p>Olá %s,</p>"+
			"<p>Seu cadastro foi realizado com sucesso. Para ativar sua conta, acesse:</p>"+
			"<p><a href=%q>%s</a></p>",
		name, activationURL, activationURL,
	)
	return subject, body
}

func PaymentConfirmedBody(name string, amount float64) (subject, body string) {
	subject = "Pagamento confirmado"
	body = fmt.Sprintf(
		"<p>Olá %s,</p>"+
			"<p>Recebemos a confirmação do seu pagamento de R$ %.2f. "+
			"Sua credencial de associado foi renovada.</p>",
		name, amount,
	)
	return subject, body
}

func CertificateIssuedBody(name, title, downloadURL string) (subject, body string) {
	subject = "Novo certificado disponível"
	body = fmt.Sprintf(
		"<p>Olá %s,</p>"+
			"<p>O certificado <strong>%s</strong> foi emitido e já pode ser baixado:</p>"+
			"<p><a href=%q>Baixar certificado</a></p>",
		name, title, downloadURL,
	)
	return subject, body
}
