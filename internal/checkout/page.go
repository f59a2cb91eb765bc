package checkout

import "html/template"

type pageData struct {
	Base     string
	Key      string
	Amount   int64
	Currency string
	OrderID  string
	Brand    string
	Name     string
	Email    string
	Phone    string
}

var page = template.Must(template.New("checkout").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Brand}} payment</title>
<script src="{{.Base}}/script.js"></script>
</head>
<body>
<p id="status">Opening the payment window...</p>
<script>
function report(kind, body) {
  fetch({{.Base}} + "/" + kind, {
    method: "POST",
    headers: {"Content-Type": "application/json"},
    body: JSON.stringify(body)
  }).then(function () {
    document.getElementById("status").textContent = "You can close this tab and return to the terminal.";
  });
}
var rzp = new Razorpay({
  key: {{.Key}},
  amount: {{.Amount}},
  currency: {{.Currency}},
  order_id: {{.OrderID}},
  name: {{.Brand}},
  description: "Membership dues",
  prefill: {name: {{.Name}}, email: {{.Email}}, contact: {{.Phone}}},
  handler: function (r) { report("success", r); },
  modal: {ondismiss: function () { report("dismiss", {}); }}
});
rzp.on("payment.failed", function (r) {
  report("failure", {reason: r.error ? r.error.description : ""});
});
rzp.open();
</script>
</body>
</html>
`))
